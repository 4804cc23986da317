package httpapi

import (
	"net/http/httptest"
	"testing"
)

func TestResolveClientIP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		forwarded string
		realIP    string
		remote    string
		want      string
	}{
		{name: "forwarded chain", forwarded: "203.0.113.7, 10.0.0.1", remote: "10.0.0.1:5000", want: "203.0.113.7"},
		{name: "real ip", realIP: "198.51.100.2", remote: "10.0.0.1:5000", want: "198.51.100.2"},
		{name: "garbage header falls through", forwarded: "unknown", remote: "192.0.2.10:443", want: "192.0.2.10"},
		{name: "ipv6 remote", remote: "[2001:db8::1]:8080", want: "2001:db8::1"},
		{name: "nothing usable", remote: "pipe", want: ""},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("POST", "/v1/auth/login", nil)
		req.RemoteAddr = tc.remote
		if tc.forwarded != "" {
			req.Header.Set("X-Forwarded-For", tc.forwarded)
		}
		if tc.realIP != "" {
			req.Header.Set("X-Real-IP", tc.realIP)
		}

		if got := resolveClientIP(req); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
