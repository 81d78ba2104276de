package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Provided reports whether any of the optional fields was sent.
func Provided(fields ...bool) bool {
	for _, f := range fields {
		if f {
			return true
		}
	}
	return false
}
