package output

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/dhabedank/lumina/internal/core"
)

// JSONAdapter outputs a saved bundle in the stored wire shape.
type JSONAdapter struct {
	config Config
}

// NewJSONAdapter creates a JSON adapter.
func NewJSONAdapter(config Config) *JSONAdapter {
	return &JSONAdapter{config: config}
}

func (a *JSONAdapter) Name() string {
	return "json"
}

func (a *JSONAdapter) Extension() string {
	return ".json"
}

func (a *JSONAdapter) Write(w io.Writer, list core.SavedList) error {
	list.Results = list.Results.Clone()
	for i := range list.Results.Books {
		if !a.config.IncludeReasons {
			list.Results.Books[i].Reason = ""
		}
		if !a.config.IncludeArtwork {
			list.Results.Books[i].CoverURL = ""
		}
	}
	for i := range list.Results.Movies {
		if !a.config.IncludeReasons {
			list.Results.Movies[i].Reason = ""
		}
		if !a.config.IncludeArtwork {
			list.Results.Movies[i].PosterURL = ""
		}
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
