// Package credentials loads TES endpoint profiles from standard locations.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// ErrInsecurePermissions is returned when credentials file has overly permissive permissions.
var ErrInsecurePermissions = fmt.Errorf("credentials file has insecure permissions")

// Environment variables consulted when a profile does not set the
// corresponding field.
const (
	// EnvURL is the TES endpoint URL fallback.
	EnvURL = "TES_URL"

	// EnvToken is the bearer token fallback.
	EnvToken = "TES_TOKEN"
)

// DefaultProfile is the profile name used when none is given.
const DefaultProfile = "default"

// Credentials holds TES endpoint profiles loaded from credentials.toml.
// Each TOML section is one profile, so any number of endpoints can be
// configured without hardcoding names.
type Credentials struct {
	profiles map[string]*Profile
}

// Profile describes how to reach one TES endpoint.
type Profile struct {
	// URL is the service root, e.g. "https://tes.example.org".
	URL string `toml:"url"`

	// Token is a bearer token for the Authorization header.
	Token string `toml:"token"`

	// BasicUser and BasicPassword configure HTTP basic auth. Ignored
	// when Token is set.
	BasicUser     string `toml:"basic_user"`
	BasicPassword string `toml:"basic_password"`
}

// StandardPaths returns the standard credential file locations in order of priority.
func StandardPaths() []string {
	paths := []string{}

	// 1. Current directory
	paths = append(paths, "credentials.toml")

	// 2. ~/.config/teskit/credentials.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "teskit", "credentials.toml"))
	}

	// 3. ~/.teskit/credentials.toml (fallback)
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".teskit", "credentials.toml"))
	}

	return paths
}

// Load loads credentials from the first available standard location.
func Load() (*Credentials, string, error) {
	for _, path := range StandardPaths() {
		if _, err := os.Stat(path); err == nil {
			creds, err := LoadFile(path)
			if err != nil {
				return nil, path, err
			}
			return creds, path, nil
		}
	}
	return nil, "", nil // No credentials file found (not an error)
}

// LoadFile loads credentials from a specific file.
// Returns ErrInsecurePermissions if file is readable by group or others.
func LoadFile(path string) (*Credentials, error) {
	// Check file permissions (Unix only)
	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		mode := info.Mode().Perm()
		// Credentials must be 0400 (owner read-only)
		if mode != 0400 {
			return nil, fmt.Errorf("%w: %s has mode %04o (must be 0400)",
				ErrInsecurePermissions, path, mode)
		}
	}

	var profiles map[string]*Profile
	if _, err := toml.DecodeFile(path, &profiles); err != nil {
		return nil, err
	}

	return &Credentials{profiles: profiles}, nil
}

// Profile returns the named profile. Fields the file leaves empty fall
// back to the TES_URL and TES_TOKEN environment variables, and a nil
// Credentials or unknown name yields a profile built purely from the
// environment, so callers never need to distinguish "no file" from
// "no section".
func (c *Credentials) Profile(name string) *Profile {
	var p Profile
	if c != nil {
		if stored, ok := c.profiles[name]; ok && stored != nil {
			p = *stored
		}
	}
	if p.URL == "" {
		p.URL = os.Getenv(EnvURL)
	}
	if p.Token == "" {
		p.Token = os.Getenv(EnvToken)
	}
	return &p
}

// Default returns the "default" profile.
func (c *Credentials) Default() *Profile {
	return c.Profile(DefaultProfile)
}

// HasAuth reports whether the profile carries any credential.
func (p *Profile) HasAuth() bool {
	return p.Token != "" || p.BasicUser != ""
}
