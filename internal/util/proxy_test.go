package util

import (
	"net/http"
	"testing"
)

func TestNewProxyFunc(t *testing.T) {
	fn := NewProxyFunc("http://proxy.internal:3128", "", "skip.example.com")

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"http uses http proxy", "http://api.example.com/v1", "http://proxy.internal:3128"},
		{"https falls back to http proxy", "https://api.example.com/v1", "http://proxy.internal:3128"},
		{"no_proxy host bypasses", "https://skip.example.com/v1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, tt.url, nil)
			if err != nil {
				t.Fatalf("NewRequest() error = %v", err)
			}
			got, err := fn(req)
			if err != nil {
				t.Fatalf("proxy func error = %v", err)
			}
			if tt.want == "" {
				if got != nil {
					t.Errorf("expected no proxy, got %v", got)
				}
				return
			}
			if got == nil || got.String() != tt.want {
				t.Errorf("proxy = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestNewProxyFunc_SeparateHTTPS(t *testing.T) {
	fn := NewProxyFunc("http://plain:80", "http://secure:443", "")

	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com", nil)
	got, err := fn(req)
	if err != nil {
		t.Fatalf("proxy func error = %v", err)
	}
	if got == nil || got.Host != "secure:443" {
		t.Errorf("proxy = %v, want secure:443", got)
	}
}
