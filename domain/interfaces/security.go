package interfaces

// Redactor masks secrets before they reach logs or terminal output
type Redactor interface {
	// IsSensitive checks if a key names a secret
	IsSensitive(key string) bool

	// Mask returns value masked when key is sensitive
	Mask(key, value string) string

	// RedactMap returns a copy of values with sensitive entries masked
	RedactMap(values map[string]string) map[string]string
}
