package file

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driven"
	"github.com/custodia-labs/tgsetup/internal/logger"
)

// Ensure EnvStore implements the interface.
var _ driven.EnvStore = (*EnvStore)(nil)

// DefaultEnvFile is used when no path is given.
const DefaultEnvFile = ".env"

// EnvStore is a file-based implementation of driven.EnvStore.
// Values are parsed with godotenv; writes only ever append.
type EnvStore struct {
	mu       sync.Mutex
	filePath string
}

// NewEnvStore creates an env store for path.
// If path is empty, defaults to .env in the working directory.
func NewEnvStore(path string) *EnvStore {
	if path == "" {
		path = DefaultEnvFile
	}
	return &EnvStore{filePath: filepath.Clean(path)}
}

// Read parses the env file.
func (s *EnvStore) Read(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrEnvNotFound, s.filePath)
		}
		return nil, err
	}

	values, err := godotenv.UnmarshalBytes(data)
	if err == nil {
		return values, nil
	}

	// Hand-edited files often carry stray lines without an assignment.
	// Drop them and parse what remains.
	logger.Debug("strict parse of %s failed (%v), ignoring lines without '='", s.filePath, err)
	values, err = godotenv.UnmarshalBytes(assignmentsOnly(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	return values, nil
}

// Append writes "\nKEY=value\n" to the end of the file, creating it if needed.
func (s *EnvStore) Append(_ context.Context, key, value string) error {
	if key == "" || strings.ContainsAny(key, "= \t\r\n") {
		return fmt.Errorf("%w: env key %q", domain.ErrInvalidInput, key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: value for %s spans lines", domain.ErrInvalidInput, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(f, "\n%s=%s\n", key, value); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Path returns the env file path.
func (s *EnvStore) Path() string {
	return s.filePath
}

// assignmentsOnly keeps comments, blank lines and lines containing '='.
func assignmentsOnly(data []byte) []byte {
	var out bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.Contains(trimmed, "=") {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}
	return out.Bytes()
}
