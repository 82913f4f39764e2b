package driven

import "context"

// EnvStore provides access to the .env configuration file.
type EnvStore interface {
	// Read parses the file into key/value pairs.
	// Returns domain.ErrEnvNotFound if the file does not exist.
	Read(ctx context.Context) (map[string]string, error)

	// Append adds a KEY=value line to the end of the file.
	// Existing lines are never rewritten.
	Append(ctx context.Context, key, value string) error

	// Path returns the file path.
	Path() string
}
