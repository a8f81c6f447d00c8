// Package assets holds files compiled into the binary.
package assets

import (
	"embed"
)

//go:embed categories.yaml
var FS embed.FS

// DefaultCategories returns the embedded category catalogue document.
func DefaultCategories() ([]byte, error) {
	return FS.ReadFile("categories.yaml")
}
