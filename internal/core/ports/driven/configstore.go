package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation ("data.path"); implementations map them to their
// storage format and handle type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// The second result is false if the key doesn't exist or isn't a boolean.
	GetBool(key string) (bool, bool)

	// Set stores a configuration value and persists it immediately.
	Set(key string, value any) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys returns all stored keys in sorted order.
	Keys() []string

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path, or "" for non-file stores.
	Path() string
}
