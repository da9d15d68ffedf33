package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
)

// CheckCommandExists verifies a command is available on PATH.
func CheckCommandExists(command string) error {
	if command == "" {
		return fmt.Errorf("command name is required")
	}

	if _, err := exec.LookPath(command); err != nil {
		return fmt.Errorf("%s not found on PATH", command)
	}
	return nil
}

// CheckDirExists verifies path exists and is a directory.
func CheckDirExists(path string) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("directory %s does not exist", path)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
