package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dhabedank/lumina/internal/core"
)

// MarkdownAdapter renders a saved bundle as a reading list document.
type MarkdownAdapter struct {
	config Config
}

// NewMarkdownAdapter creates a Markdown adapter.
func NewMarkdownAdapter(config Config) *MarkdownAdapter {
	return &MarkdownAdapter{config: config}
}

func (a *MarkdownAdapter) Name() string {
	return "markdown"
}

func (a *MarkdownAdapter) Extension() string {
	return ".md"
}

func (a *MarkdownAdapter) Write(w io.Writer, list core.SavedList) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", list.Name)
	fmt.Fprintf(&b, "_Archived %s_\n\n", time.UnixMilli(list.Timestamp).UTC().Format("January 2, 2006"))
	b.WriteString(a.profile(list.Preferences))

	b.WriteString("## Books\n\n")
	for i, book := range list.Results.Books {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, book.Title)
		fmt.Fprintf(&b, "by %s", book.Author)
		if len(book.Genres) > 0 {
			fmt.Fprintf(&b, " · %s", strings.Join(book.Genres, ", "))
		}
		b.WriteString("\n\n")
		if a.config.IncludeArtwork && book.CoverURL != "" {
			fmt.Fprintf(&b, "![Cover of %s](%s)\n\n", book.Title, book.CoverURL)
		}
		fmt.Fprintf(&b, "%s\n\n", book.Description)
		if a.config.IncludeReasons && book.Reason != "" {
			fmt.Fprintf(&b, "> %s\n\n", book.Reason)
		}
	}

	b.WriteString("## On Screen\n\n")
	for _, media := range list.Results.Movies {
		fmt.Fprintf(&b, "### %s (%s, %s)\n\n", media.Title, media.Type, media.Year)
		if a.config.IncludeArtwork && media.PosterURL != "" {
			fmt.Fprintf(&b, "![Poster for %s](%s)\n\n", media.Title, media.PosterURL)
		}
		fmt.Fprintf(&b, "%s\n\n", media.Description)
		if a.config.IncludeReasons && media.Reason != "" {
			fmt.Fprintf(&b, "> %s\n\n", media.Reason)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

func (a *MarkdownAdapter) profile(p core.Preferences) string {
	genre := p.PrimaryGenre
	if p.SecondaryGenre != "" {
		genre += " / " + p.SecondaryGenre
	}

	var b strings.Builder
	b.WriteString("| Genre | Mood | Pace | Complexity |\n")
	b.WriteString("|-------|------|------|------------|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n", genre, p.Mood, p.Pace, p.Complexity)
	return b.String()
}
