package cache

import (
	"net/url"
	"strings"
)

// ScopedKeyer prefixes every key, so that positions from different
// ephemeris services sharing one backend never answer for each other.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ServiceKeyer scopes keys to the ephemeris service at baseURL. URLs that
// differ only in scheme, case or a trailing slash share a scope.
//
//	https://Ephem.example.com/api/ -> "svc:ephem.example.com/api:"
func ServiceKeyer(baseURL string) *ScopedKeyer {
	scope := strings.TrimRight(baseURL, "/")
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		scope = strings.ToLower(u.Host) + strings.TrimRight(u.Path, "/")
	}
	return NewScopedKeyer(nil, "svc:"+scope+":")
}

// Prefix returns the scope prepended to every key.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

// HTTPKey implements [Keyer].
func (k *ScopedKeyer) HTTPKey(service, requestURL string) string {
	return k.prefix + k.inner.HTTPKey(service, requestURL)
}

// PositionsKey implements [Keyer].
func (k *ScopedKeyer) PositionsKey(opts PositionsKeyOpts) string {
	return k.prefix + k.inner.PositionsKey(opts)
}

var _ Keyer = (*ScopedKeyer)(nil)
