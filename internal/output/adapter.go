// Package output renders archived bundles for export.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dhabedank/lumina/internal/core"
)

// Adapter is the interface all output adapters must implement.
type Adapter interface {
	// Name returns the format identifier used by --format.
	Name() string

	// Extension is the file suffix for exported files, including the dot.
	Extension() string

	// Write renders one saved bundle to w.
	Write(w io.Writer, list core.SavedList) error
}

// Config configures output adapter behavior.
type Config struct {
	// IncludeReasons adds the "why this fits" text for every item.
	IncludeReasons bool

	// IncludeArtwork adds cover and poster URLs where enrichment found them.
	IncludeArtwork bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		IncludeReasons: true,
		IncludeArtwork: true,
	}
}

// Formats lists the names New accepts.
var Formats = []string{"json", "markdown"}

// New creates the adapter for format.
func New(format string, config Config) (Adapter, error) {
	switch format {
	case "json":
		return NewJSONAdapter(config), nil
	case "markdown", "md":
		return NewMarkdownAdapter(config), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// Export writes list to path, or to stdout when path is empty.
func Export(a Adapter, list core.SavedList, path string) error {
	if path == "" {
		return a.Write(os.Stdout, list)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := a.Write(f, list); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
