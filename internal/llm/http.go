package llm

import (
	"net/http"
	"net/url"
	"time"
)

// newProxyFunc creates a proxy function based on configuration.
// If no proxy URLs are provided, falls back to environment variables.
func newProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// headerTransport injects fixed headers into every request. OpenRouter
// attributes traffic via HTTP-Referer and X-Title.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for k, v := range t.headers {
		clone.Header.Set(k, v)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

// newHTTPClient builds the shared HTTP client for a provider
func newHTTPClient(cfg Config, extraHeaders map[string]string) *http.Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy: newProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if len(extraHeaders) > 0 {
		transport = &headerTransport{base: transport, headers: extraHeaders}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
