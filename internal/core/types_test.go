package core

import (
	"fmt"
	"testing"
)

func sessionAt(ts int64, titles ...string) Session {
	s := Session{Timestamp: ts}
	for _, t := range titles {
		s.Results.Books = append(s.Results.Books, BookRecommendation{Title: t})
	}
	return s
}

func TestPushHistory(t *testing.T) {
	var history []Session
	for i := 1; i <= 12; i++ {
		history = PushHistory(history, sessionAt(int64(i)))
	}

	if len(history) != MaxHistory {
		t.Fatalf("len = %d, want %d", len(history), MaxHistory)
	}
	if history[0].Timestamp != 12 {
		t.Errorf("newest = %d, want 12", history[0].Timestamp)
	}
	if history[len(history)-1].Timestamp != 3 {
		t.Errorf("oldest = %d, want 3 (1 and 2 evicted)", history[len(history)-1].Timestamp)
	}
}

func TestPushHistoryDoesNotModifyInput(t *testing.T) {
	history := []Session{sessionAt(2), sessionAt(1)}
	out := PushHistory(history, sessionAt(3))

	if len(history) != 2 || history[0].Timestamp != 2 {
		t.Errorf("input changed: %+v", history)
	}
	if len(out) != 3 || out[0].Timestamp != 3 {
		t.Errorf("out = %+v", out)
	}
}

func TestExcludedTitles(t *testing.T) {
	tests := []struct {
		name    string
		history []Session
		want    []string
	}{
		{"empty history", nil, []string{}},
		{
			"newest first, duplicates kept",
			[]Session{sessionAt(2, "Piranesi", "Dune"), sessionAt(1, "Dune")},
			[]string{"Piranesi", "Dune", "Dune"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExcludedTitles(tt.history)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) || got == nil {
				t.Errorf("ExcludedTitles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreferencesReady(t *testing.T) {
	tests := []struct {
		genre string
		want  bool
	}{
		{"", false},
		{"   ", false},
		{"Fantasy", true},
	}
	for _, tt := range tests {
		p := DefaultPreferences()
		p.PrimaryGenre = tt.genre
		if got := p.Ready(); got != tt.want {
			t.Errorf("Ready() with %q = %v, want %v", tt.genre, got, tt.want)
		}
	}
}

func TestPreferencesWith(t *testing.T) {
	p := DefaultPreferences().
		With(FieldPrimaryGenre, "Horror").
		With(FieldSecondaryGenre, "Mystery").
		With(FieldPastBooks, "Dracula")

	if p.PrimaryGenre != "Horror" || p.SecondaryGenre != "Mystery" || p.PastBooks != "Dracula" {
		t.Errorf("With() = %+v", p)
	}
	if p.Pace != "Moderate" {
		t.Errorf("unrelated field changed: Pace = %q", p.Pace)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := DiscoveryResults{
		Books:  []BookRecommendation{{Title: "A", Genres: []string{"Fantasy"}}},
		Movies: []MediaRecommendation{{Title: "B", Genres: []string{"Drama"}}},
	}
	c := orig.Clone()
	c.Books[0].CoverURL = "x"
	c.Books[0].Genres[0] = "Horror"
	c.Movies[0].PosterURL = "y"

	if orig.Books[0].CoverURL != "" || orig.Books[0].Genres[0] != "Fantasy" || orig.Movies[0].PosterURL != "" {
		t.Errorf("clone shares memory with original: %+v", orig)
	}
}

func TestDefaultArchiveName(t *testing.T) {
	p := DefaultPreferences()
	p.PrimaryGenre = "Science Fiction"
	if got := DefaultArchiveName(p); got != "Science Fiction & Cinematic Echoes" {
		t.Errorf("DefaultArchiveName() = %q", got)
	}
}
