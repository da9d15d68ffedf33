package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func validateProvisionOptions(opts provisionOptions) error {
	if opts.ConfigPath != "" {
		if strings.TrimSpace(opts.ConfigPath) == "" {
			return fmt.Errorf("config path is blank")
		}
		abs, err := filepath.Abs(opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("config file does not exist: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("config path %s is a directory", abs)
		}
	}

	if opts.MetricsFile != "" {
		dir := filepath.Dir(opts.MetricsFile)
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("metrics directory does not exist: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("metrics path %s is not inside a directory", opts.MetricsFile)
		}
	}

	return nil
}
