package core

import (
	"strings"
	"testing"
)

func TestBuildUserPrompt(t *testing.T) {
	prefs := Preferences{
		PastBooks:      "The Hobbit",
		BookCount:      "11-50",
		PrimaryGenre:   "Fantasy",
		SecondaryGenre: "Mystery",
		MoviesShows:    "Arrival",
		Pace:           "Slow & Atmospheric",
		Mood:           "Thought-provoking",
		Complexity:     "Complex & Layered",
	}

	prompt := BuildUserPrompt(prefs, []string{"Dune", "Piranesi"})

	for _, want := range []string{
		"Books previously read: The Hobbit",
		"Total books read: 11-50",
		"Favorite Genres: Fantasy, Mystery",
		"Movies/TV Shows liked: Arrival",
		"Preferred Pace: Slow & Atmospheric",
		"Preferred Mood: Thought-provoking",
		"Desired Complexity: Complex & Layered",
		"Previous Recommendations (DO NOT REPEAT): Dune, Piranesi",
		"Exactly 4 Book Recommendations",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildUserPromptEmptyExclusions(t *testing.T) {
	prompt := BuildUserPrompt(DefaultPreferences(), nil)
	if !strings.Contains(prompt, "Previous Recommendations (DO NOT REPEAT): \n") {
		t.Errorf("empty exclusion list should render as nothing:\n%s", prompt)
	}
}

func TestSystemPromptCarriesFormat(t *testing.T) {
	for _, want := range []string{
		"complement the books",
		`"books" MUST contain exactly 4 entries`,
		`"movies" MUST contain 2 or 3 entries`,
	} {
		if !strings.Contains(SystemPrompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
