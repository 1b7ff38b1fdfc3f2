package ptr

// Ptr returns a pointer to v. Convenient for optional fields and filters.
func Ptr[T any](v T) *T {
	return &v
}
