package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// CoalesceStrPtr returns the first non-nil *string.
func CoalesceStrPtr(ptrs ...*string) *string {
	for _, p := range ptrs {
		if p != nil {
			return p
		}
	}
	return nil
}

// CoalesceIntPtr returns the first non-nil *int.
func CoalesceIntPtr(ptrs ...*int) *int {
	for _, p := range ptrs {
		if p != nil {
			return p
		}
	}
	return nil
}

// StrOr dereferences p, or returns fallback when p is nil.
func StrOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
