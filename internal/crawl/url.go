package crawl

import (
	"fmt"
	"net/url"
	"strings"
)

// Normalize returns the canonical form of an absolute URL used as the
// visited-set key: lowercase scheme and host, default port removed,
// fragment dropped, empty path replaced by "/".
func Normalize(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return "", fmt.Errorf("%w: %q: missing host", ErrInvalidURL, raw)
		}
	case "file":
	default:
		return "", fmt.Errorf("%w: %q: unsupported scheme", ErrInvalidURL, raw)
	}

	u.Host = strings.ToLower(u.Host)
	if port := u.Port(); (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		u.Host = u.Hostname()
	}
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
	return u.String(), nil
}

// Resolve resolves ref against base and normalizes the result.
func Resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, base, err)
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, ref, err)
	}
	return Normalize(b.ResolveReference(r).String())
}

// RewriteBase replaces the scheme and host of raw with those of base.
// Path, query and fragment of raw are kept. An empty base returns raw.
func RewriteBase(raw, base string) (string, error) {
	if base == "" {
		return raw, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	b, err := url.Parse(base)
	if err != nil || b.Scheme == "" || b.Host == "" {
		return "", fmt.Errorf("%w: base %q", ErrInvalidURL, base)
	}
	u.Scheme = b.Scheme
	u.Host = b.Host
	if prefix := strings.TrimSuffix(b.Path, "/"); prefix != "" && u.Path != prefix && !strings.HasPrefix(u.Path, prefix+"/") {
		u.Path = prefix + u.Path
	}
	return u.String(), nil
}

// sameSite reports whether a and b share scheme and host.
func sameSite(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return ua.Scheme == ub.Scheme && strings.EqualFold(ua.Host, ub.Host)
}

// pathOf returns the path component of raw, or "/" when it cannot be parsed.
func pathOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
