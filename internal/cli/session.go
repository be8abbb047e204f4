package cli

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/publicsuffix"
)

// sessionCookieName matches the cookie the backend sets after the code exchange.
const sessionCookieName = "Authorization"

// NewHTTPClient returns a traced client whose cookie jar is seeded with the
// configured session value for backendURL.
func NewHTTPClient(backendURL, session string) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	if session != "" {
		u, err := url.Parse(backendURL)
		if err != nil {
			return nil, fmt.Errorf("parsing backend url: %w", err)
		}
		jar.SetCookies(u, []*http.Cookie{{
			Name:   sessionCookieName,
			Value:  session,
			Path:   "/",
			Secure: u.Scheme == "https",
		}})
	}

	return &http.Client{
		Jar:       jar,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, nil
}
