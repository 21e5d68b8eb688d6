package remote

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"osu-tracker/internal/constants"

	"github.com/google/uuid"
)

// LoadDeviceID returns the anonymous identifier of this installation,
// generating and persisting one on first use.
func LoadDeviceID(dir string) (string, error) {
	path := filepath.Join(dir, constants.DeviceIDFile)

	raw, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(raw)); id != "" {
			return id, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", err
	}
	return id, nil
}
