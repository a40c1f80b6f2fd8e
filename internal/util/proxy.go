package util

import (
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// NewProxyFunc creates a proxy function based on configuration.
// If no proxy URLs are provided, falls back to environment variables.
// HTTPS requests use httpProxy when httpsProxy is empty; noProxy follows
// the NO_PROXY syntax.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}
	if httpsProxy == "" {
		httpsProxy = httpProxy
	}

	cfg := &httpproxy.Config{
		HTTPProxy:  httpProxy,
		HTTPSProxy: httpsProxy,
		NoProxy:    noProxy,
	}
	proxyFor := cfg.ProxyFunc()

	return func(req *http.Request) (*url.URL, error) {
		return proxyFor(req.URL)
	}
}

// NewTransport returns an http.Transport honoring the proxy settings
func NewTransport(httpProxy, httpsProxy, noProxy string) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.Proxy = NewProxyFunc(httpProxy, httpsProxy, noProxy)
	return t
}
