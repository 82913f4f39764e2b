// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - EnvStore: .env file parsing (godotenv) and append-only writes
package file
