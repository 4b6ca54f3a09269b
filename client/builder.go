package client

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teskit/teskit/errors"
	"github.com/teskit/teskit/retry"
)

// DefaultTimeout bounds each HTTP attempt when no custom http.Client is
// supplied. Every retry attempt gets its own timeout; the overall budget
// is the caller's context.
const DefaultTimeout = 30 * time.Second

// Builder accumulates client configuration. Chain the setters and finish
// with Build, the only place configuration is validated. A Builder is not
// safe for concurrent use; the Client it produces is.
type Builder struct {
	url     string
	headers http.Header
	policy  retry.Policy
	client  *http.Client
	log     *zap.Logger
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		headers: make(http.Header),
	}
}

// URL sets the base URL of the service, e.g. "https://tes.example.org".
// A path prefix is kept, so services mounted under one (such as
// "https://example.org/ga4gh/tes/v1") work unchanged.
func (b *Builder) URL(rawURL string) *Builder {
	b.url = rawURL
	return b
}

// Header adds a header sent with every request. Calling it twice with the
// same key sends the header twice.
func (b *Builder) Header(key, value string) *Builder {
	b.headers.Add(key, value)
	return b
}

// BearerToken authorizes every request with an OAuth2 bearer token.
func (b *Builder) BearerToken(token string) *Builder {
	b.headers.Set("Authorization", "Bearer "+token)
	return b
}

// BasicAuth authorizes every request with HTTP basic credentials.
func (b *Builder) BasicAuth(username, password string) *Builder {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	b.headers.Set("Authorization", "Basic "+encoded)
	return b
}

// MaxAttempts sets the total number of tries per operation, first try
// included. Zero or negative selects the default.
func (b *Builder) MaxAttempts(n int) *Builder {
	b.policy.MaxAttempts = n
	return b
}

// Backoff sets the delay schedule between attempts: the initial delay,
// the growth factor, and the cap.
func (b *Builder) Backoff(initial time.Duration, multiplier float64, max time.Duration) *Builder {
	b.policy.InitialBackoff = initial
	b.policy.Multiplier = multiplier
	b.policy.MaxBackoff = max
	return b
}

// HTTPClient replaces the default HTTP client, for custom TLS, proxy, or
// timeout configuration.
func (b *Builder) HTTPClient(hc *http.Client) *Builder {
	b.client = hc
	return b
}

// Logger sets the logger for request-level debug output. The default
// discards everything; the client reports failures through returned
// errors, not log lines.
func (b *Builder) Logger(log *zap.Logger) *Builder {
	b.log = log
	return b
}

// Build validates the configuration and returns an immutable Client. A
// missing, unparseable, or non-HTTP base URL yields a KindConfig error.
func (b *Builder) Build() (*Client, error) {
	base, err := normalizeURL(b.url)
	if err != nil {
		return nil, err
	}

	hc := b.client
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}

	log := b.log
	if log == nil {
		log = zap.NewNop()
	}

	// Copy the headers so later Builder mutations cannot reach the
	// built client.
	headers := make(http.Header, len(b.headers))
	for key, values := range b.headers {
		for _, value := range values {
			headers.Add(key, value)
		}
	}

	return &Client{
		base:    base,
		headers: headers,
		policy:  b.policy,
		client:  hc,
		log:     log,
	}, nil
}

// normalizeURL parses and canonicalizes the service base URL: scheme must
// be http or https, a host must be present, and trailing slashes are
// trimmed so endpoint paths can be appended directly.
func normalizeURL(raw string) (string, error) {
	if raw == "" {
		return "", errors.Config("service URL is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Config(fmt.Sprintf("cannot parse service URL %q", raw), errors.WithCause(err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.Newf(errors.KindConfig, "service URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return "", errors.Newf(errors.KindConfig, "service URL %q has no host", raw)
	}

	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}
