// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// ProxyEnvironmentVariables lists the proxy variables in order of preference.
var ProxyEnvironmentVariables = []string{
	"HTTPS_PROXY",
	"https_proxy",
	"HTTP_PROXY",
	"http_proxy",
}

// NewClient returns an HTTP client with the given overall timeout and an
// explicit proxy when one of ProxyEnvironmentVariables is set.
func NewClient(timeout time.Duration, log logrus.FieldLogger) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyURL := proxyFromEnv(); proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(parsed)
			if log != nil {
				log.WithField("proxy_url", RedactURL(proxyURL)).Debug("HTTP client configured with proxy")
			}
		} else if log != nil {
			log.WithError(err).WithField("proxy_url", RedactURL(proxyURL)).Warn("Failed to parse proxy URL, using direct connection")
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func proxyFromEnv() string {
	for _, name := range ProxyEnvironmentVariables {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// RedactURL hides user credentials so a URL can be logged.
func RedactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "[invalid-url]"
	}
	if parsed.User != nil {
		parsed.User = url.UserPassword("***", "***")
	}
	return parsed.String()
}
