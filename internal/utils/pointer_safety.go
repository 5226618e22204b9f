package utils

func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// NonEmpty returns a pointer to s, or nil when s is empty. Optional tokens
// read from JSON bodies go through it so that "" and "absent" mean the same.
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// IsSet reports whether the optional string holds a non-empty value.
func IsSet(s *string) bool {
	return s != nil && *s != ""
}
