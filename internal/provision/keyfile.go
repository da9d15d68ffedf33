package provision

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/keysmith/internal/config"
)

// KeyFilePath decides where the key is written. dir overrides the profile's
// key directory; a leading "~" is expanded to the home directory.
func KeyFilePath(p *config.Profile, dir string, now time.Time) (string, error) {
	if dir == "" {
		dir = p.KeyDir
	}
	expanded, err := expandHome(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(expanded, p.KeyFileName(now)), nil
}

func expandHome(dir string) (string, error) {
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(dir, "~")), nil
}
