// Package output writes result records as an indented JSON array.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/magefree/arena-go/internal/game"
)

// Write encodes results to w. A nil slice is written as an empty array.
func Write(w io.Writer, results []*game.Result) error {
	if results == nil {
		results = []*game.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

// WriteFile writes results to path, creating parent directories.
func WriteFile(path string, results []*game.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Write(file, results); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
