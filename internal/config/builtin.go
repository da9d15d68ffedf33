package config

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed profiles/*.yaml
var builtinFS embed.FS

// DefaultProfile is used when no profile is requested.
const DefaultProfile = "password-sync"

// BuiltinNames lists the embedded profiles.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("profiles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Builtin returns the embedded profile called name.
func Builtin(name string) (*Profile, error) {
	file := path.Join("profiles", name+".yaml")
	data, err := builtinFS.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return parseProfileData(file, data)
}

// Load resolves the profile for a run: a file path wins over a built-in name.
func Load(name, file string) (*Profile, error) {
	if file != "" {
		return ParseProfile(file)
	}
	if name == "" {
		name = DefaultProfile
	}
	return Builtin(name)
}
