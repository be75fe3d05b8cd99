package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseBaseURL validates the configured lyrics source endpoint. The base URL
// must be absolute, http(s), and carry no path, query, or fragment of its
// own. The lookup path derived per request is the only path component.
func ParseBaseURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", raw)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", raw)
	}
	if strings.TrimRight(parsed.Path, "/") != "" || parsed.RawQuery != "" || parsed.Fragment != "" {
		return nil, fmt.Errorf("base URL %q must not carry a path, query, or fragment", raw)
	}
	parsed.Path = ""
	return parsed, nil
}

// Endpoint joins a validated base URL with a derived lookup path.
// Pure and deterministic: the same base and path always produce the same URL.
func Endpoint(base *url.URL, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	joined := *base
	joined.Path = path
	return joined.String()
}
