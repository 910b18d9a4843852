package config

import (
	"path/filepath"
	"strings"
)

// HomeDirFunc returns the user's home directory.
type HomeDirFunc func() (string, error)

// ExpandHome replaces a leading "~/" with the home directory. If the home
// directory cannot be determined the path is returned unchanged.
func ExpandHome(path string, home HomeDirFunc) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	dir, err := home()
	if err != nil || dir == "" {
		return path
	}
	return filepath.Join(dir, rest)
}

// DefaultSnippetsFile returns the snippets file read when the editor does not
// name one: ~/.config/snippets-ls/snippets.toml.
func DefaultSnippetsFile(home HomeDirFunc) (string, bool) {
	dir, err := home()
	if err != nil || dir == "" {
		return "", false
	}
	return filepath.Join(dir, ".config", "snippets-ls", "snippets.toml"), true
}
