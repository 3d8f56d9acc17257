package deprecation

var (
	// deprecatedKeys maps a retired config key to the key that replaced it
	deprecatedKeys = map[string]string{
		"filter": "severity_filter",
		"sort":   "sort_order",
	}
)

// Deprecated returns true if the key is deprecated
func Deprecated(k string) bool {
	_, ok := deprecatedKeys[k]
	return ok
}

// Replacement returns the key that replaces a deprecated key, if any
func Replacement(k string) (string, bool) {
	r, ok := deprecatedKeys[k]
	return r, ok
}
