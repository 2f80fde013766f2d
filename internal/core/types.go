package core

import (
	"fmt"
	"strings"
)

// Preferences is everything the wizard collects before a discovery run.
// Field names on the wire match the profile blobs written by earlier versions.
type Preferences struct {
	PastBooks      string `json:"pastBooks"`      // Free text: books already read
	BookCount      string `json:"bookCount"`      // One of BookCountOptions
	PrimaryGenre   string `json:"primaryGenre"`   // Required before fetching
	SecondaryGenre string `json:"secondaryGenre"` // Optional
	MoviesShows    string `json:"moviesShows"`    // Free text: liked movies and shows
	Pace           string `json:"pace"`           // One of Paces
	Mood           string `json:"mood"`           // One of Moods
	Complexity     string `json:"complexity"`     // One of Complexities
}

// DefaultPreferences returns the starting point for a new wizard run.
func DefaultPreferences() Preferences {
	return Preferences{
		BookCount:  "11-50",
		Pace:       "Moderate",
		Mood:       "Thought-provoking",
		Complexity: "Standard",
	}
}

// Ready reports whether the preferences may be sent to the recommender.
func (p Preferences) Ready() bool {
	return strings.TrimSpace(p.PrimaryGenre) != ""
}

// MediaType distinguishes films from series.
type MediaType string

const (
	MediaMovie  MediaType = "Movie"
	MediaSeries MediaType = "Series"
)

// BookRecommendation is a single suggested book.
type BookRecommendation struct {
	Title       string   `json:"title" validate:"notblank"`
	Author      string   `json:"author" validate:"notblank"`
	Genres      []string `json:"genres" validate:"min=1,dive,notblank"`
	Description string   `json:"description" validate:"notblank"`
	Reason      string   `json:"reason" validate:"notblank"`
	CoverURL    string   `json:"coverUrl,omitempty"` // Set by enrichment, may stay empty
}

// MediaRecommendation is a film or series that shares the books' tone.
type MediaRecommendation struct {
	Title       string    `json:"title" validate:"notblank"`
	Year        string    `json:"year" validate:"notblank"`
	Type        MediaType `json:"type" validate:"required,oneof=Movie Series"`
	Genres      []string  `json:"genres" validate:"min=1,dive,notblank"`
	Description string    `json:"description" validate:"notblank"`
	Reason      string    `json:"reason" validate:"notblank"`
	PosterURL   string    `json:"posterUrl,omitempty"` // Set by enrichment, may stay empty
}

// DiscoveryResults is one discovery bundle: books plus their screen counterparts.
type DiscoveryResults struct {
	Books  []BookRecommendation  `json:"books" validate:"len=4,dive"`
	Movies []MediaRecommendation `json:"movies" validate:"min=2,max=3,dive"`
}

// Clone returns a deep copy so enrichment never writes into a shared bundle.
func (r DiscoveryResults) Clone() DiscoveryResults {
	out := DiscoveryResults{
		Books:  make([]BookRecommendation, len(r.Books)),
		Movies: make([]MediaRecommendation, len(r.Movies)),
	}
	for i, b := range r.Books {
		b.Genres = append([]string(nil), b.Genres...)
		out.Books[i] = b
	}
	for i, m := range r.Movies {
		m.Genres = append([]string(nil), m.Genres...)
		out.Movies[i] = m
	}
	return out
}

// Session is one automatic history entry. Immutable once created.
type Session struct {
	Timestamp   int64            `json:"timestamp"` // Unix milliseconds
	Preferences Preferences      `json:"preferences"`
	Results     DiscoveryResults `json:"results"`
}

// SavedList is a bundle the user explicitly archived under a name.
type SavedList struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Timestamp   int64            `json:"timestamp"` // Unix milliseconds
	Results     DiscoveryResults `json:"results"`
	Preferences Preferences      `json:"preferences"`
}

// User is the signed-in profile. A nil *User means guest.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoUrl"`
}

// MaxHistory is how many sessions are kept for novelty tracking.
const MaxHistory = 10

// PushHistory prepends s and evicts the oldest entries beyond MaxHistory.
// The input slice is not modified.
func PushHistory(history []Session, s Session) []Session {
	out := make([]Session, 0, min(len(history)+1, MaxHistory))
	out = append(out, s)
	for _, h := range history {
		if len(out) == MaxHistory {
			break
		}
		out = append(out, h)
	}
	return out
}

// ExcludedTitles flattens every book title across history, newest session first.
// Duplicates are kept.
func ExcludedTitles(history []Session) []string {
	titles := []string{}
	for _, h := range history {
		for _, b := range h.Results.Books {
			titles = append(titles, b.Title)
		}
	}
	return titles
}

// DefaultArchiveName suggests a name for a bundle built from prefs.
func DefaultArchiveName(prefs Preferences) string {
	return fmt.Sprintf("%s & Cinematic Echoes", prefs.PrimaryGenre)
}
