package client

import (
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/teskit/teskit/errors"
)

func TestBuildNormalizesURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "plain",
			url:  "https://tes.example.org",
			want: "https://tes.example.org",
		},
		{
			name: "trailing slash trimmed",
			url:  "https://tes.example.org/",
			want: "https://tes.example.org",
		},
		{
			name: "path prefix kept",
			url:  "https://example.org/ga4gh/tes/v1/",
			want: "https://example.org/ga4gh/tes/v1",
		},
		{
			name: "http with port",
			url:  "http://localhost:8000",
			want: "http://localhost:8000",
		},
		{
			name: "query and fragment dropped",
			url:  "https://tes.example.org/?debug=1#top",
			want: "https://tes.example.org",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewBuilder().URL(tt.url).Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if c.base != tt.want {
				t.Errorf("base = %q, want %q", c.base, tt.want)
			}
		})
	}
}

func TestBuildRejectsBadURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "unparseable", url: "http://bad url with spaces"},
		{name: "wrong scheme", url: "ftp://example.org"},
		{name: "no scheme", url: "tes.example.org"},
		{name: "no host", url: "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().URL(tt.url).Build()
			if err == nil {
				t.Fatalf("Build(%q) succeeded, want config error", tt.url)
			}
			if !errors.IsKind(err, errors.KindConfig) {
				t.Errorf("Build(%q) kind = %v, want %v", tt.url, errors.KindOf(err), errors.KindConfig)
			}
		})
	}
}

func TestBuilderBearerToken(t *testing.T) {
	c, err := NewBuilder().URL("https://tes.example.org").BearerToken("sekrit").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := c.headers.Get("Authorization"); got != "Bearer sekrit" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer sekrit")
	}
}

func TestBuilderBasicAuth(t *testing.T) {
	c, err := NewBuilder().URL("https://tes.example.org").BasicAuth("ada", "lovelace").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("ada:lovelace"))
	if got := c.headers.Get("Authorization"); got != want {
		t.Errorf("Authorization = %q, want %q", got, want)
	}
}

func TestBuilderHeaderAccumulates(t *testing.T) {
	c, err := NewBuilder().
		URL("https://tes.example.org").
		Header("X-Request-Source", "pipeline").
		Header("X-Request-Source", "batch-7").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := c.headers.Values("X-Request-Source"); len(got) != 2 {
		t.Errorf("header values = %v, want two entries", got)
	}
}

func TestBuilderDefaults(t *testing.T) {
	c, err := NewBuilder().URL("https://tes.example.org").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if c.client.Timeout != DefaultTimeout {
		t.Errorf("http timeout = %v, want %v", c.client.Timeout, DefaultTimeout)
	}
	if c.log == nil {
		t.Error("logger should default to a no-op, not nil")
	}
}

func TestBuilderCustomHTTPClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	c, err := NewBuilder().URL("https://tes.example.org").HTTPClient(hc).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if c.client != hc {
		t.Error("custom HTTP client was not used")
	}
}

func TestBuiltClientUnaffectedByLaterBuilderChanges(t *testing.T) {
	b := NewBuilder().URL("https://tes.example.org")
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	b.Header("X-Added-Later", "yes")

	if got := c.headers.Get("X-Added-Later"); got != "" {
		t.Errorf("client picked up header added after Build: %q", got)
	}
}
