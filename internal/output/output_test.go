package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/dhabedank/lumina/internal/core"
)

func sampleList() core.SavedList {
	return core.SavedList{
		ID:        "abc123",
		Name:      "Fantasy & Cinematic Echoes",
		Timestamp: 1700000000000,
		Preferences: core.Preferences{
			PrimaryGenre:   "Fantasy",
			SecondaryGenre: "Mystery",
			Mood:           "Thought-provoking",
			Pace:           "Moderate",
			Complexity:     "Standard",
		},
		Results: core.DiscoveryResults{
			Books: []core.BookRecommendation{
				{Title: "The Name of the Wind", Author: "Patrick Rothfuss", Genres: []string{"Fantasy"}, Description: "A legend retold.", Reason: "Lyrical prose.", CoverURL: "https://covers.example/1.jpg"},
				{Title: "Piranesi", Author: "Susanna Clarke", Genres: []string{"Fantasy", "Mystery"}, Description: "An infinite house.", Reason: "Quiet wonder."},
			},
			Movies: []core.MediaRecommendation{
				{Title: "Pan's Labyrinth", Year: "2006", Type: core.MediaMovie, Description: "Dark fairy tale.", Reason: "Same ache.", PosterURL: "https://posters.example/1.jpg"},
			},
		},
	}
}

func TestNew(t *testing.T) {
	for _, format := range Formats {
		a, err := New(format, DefaultConfig())
		if err != nil {
			t.Fatalf("New(%q): %v", format, err)
		}
		if a.Name() != format {
			t.Errorf("Name() = %q, want %q", a.Name(), format)
		}
	}
	if _, err := New("csv", DefaultConfig()); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestJSONAdapter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONAdapter(DefaultConfig()).Write(&buf, sampleList()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got core.SavedList
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.ID != "abc123" || len(got.Results.Books) != 2 {
		t.Errorf("unexpected decode: %+v", got)
	}
	if !strings.Contains(buf.String(), `"coverUrl"`) {
		t.Error("cover URL missing from JSON")
	}
}

func TestJSONAdapterStripsOptionalFields(t *testing.T) {
	list := sampleList()
	var buf bytes.Buffer
	err := NewJSONAdapter(Config{}).Write(&buf, list)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "coverUrl") || strings.Contains(out, "posterUrl") {
		t.Errorf("artwork not stripped: %s", out)
	}
	if strings.Contains(out, "Lyrical prose.") {
		t.Errorf("reason not stripped: %s", out)
	}
	if list.Results.Books[0].Reason == "" {
		t.Error("Write modified the caller's bundle")
	}
}

func TestMarkdownAdapter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownAdapter(DefaultConfig()).Write(&buf, sampleList()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Fantasy & Cinematic Echoes",
		"_Archived November 14, 2023_",
		"| Fantasy / Mystery | Thought-provoking | Moderate | Standard |",
		"### 1. The Name of the Wind",
		"by Patrick Rothfuss · Fantasy",
		"![Cover of The Name of the Wind](https://covers.example/1.jpg)",
		"> Lyrical prose.",
		"### Pan's Labyrinth (Movie, 2006)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "![Cover of Piranesi]") {
		t.Error("rendered a cover that was never found")
	}
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.md")
	if err := Export(NewMarkdownAdapter(DefaultConfig()), sampleList(), path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("# Fantasy")) {
		t.Errorf("unexpected file content: %s", data)
	}
}
