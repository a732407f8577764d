// internal/identity/identity.go
package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Provider resolves the stable per-installation player id, persisted at
// Path across sessions.
type Provider struct {
	Path string
}

// PlayerID returns the persisted id, minting and storing a fresh one on
// first use. Malformed file contents are replaced rather than treated as
// an error.
func (p Provider) PlayerID() (string, error) {
	data, err := os.ReadFile(p.Path)
	if err == nil {
		id := strings.TrimSpace(string(data))
		if _, perr := uuid.Parse(id); perr == nil {
			return id, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read player id from %s: %w", p.Path, err)
	}

	id := uuid.NewString()
	if dir := filepath.Dir(p.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("create identity dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(p.Path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("persist player id to %s: %w", p.Path, err)
	}
	return id, nil
}
