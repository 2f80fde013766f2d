package core

// Choices offered by the wizard. Preferences may hold other values when
// loaded from older profiles; the prompt embeds whatever is stored.
var (
	Genres = []string{
		"Fantasy", "Science Fiction", "Mystery", "Thriller", "Horror",
		"Romance", "Historical Fiction", "Contemporary", "Non-Fiction",
		"Biography", "History", "Philosophy", "Psychology", "Poetry",
	}

	Paces        = []string{"Slow & Atmospheric", "Moderate", "Fast-Paced", "Breakneck"}
	Moods        = []string{"Thought-provoking", "Heartwarming", "Dark & Gritty", "Inspiring", "Mysterious", "Funny"}
	Complexities = []string{"Light & Easy", "Standard", "Complex & Layered", "Dense & Academic"}

	BookCountOptions = []string{"0-10", "11-50", "51-200", "200+"}
)

// Field names a single editable preference.
type Field string

const (
	FieldPastBooks      Field = "pastBooks"
	FieldBookCount      Field = "bookCount"
	FieldPrimaryGenre   Field = "primaryGenre"
	FieldSecondaryGenre Field = "secondaryGenre"
	FieldMoviesShows    Field = "moviesShows"
	FieldPace           Field = "pace"
	FieldMood           Field = "mood"
	FieldComplexity     Field = "complexity"
)

// With returns a copy of p with field set to value. Unknown fields leave p unchanged.
func (p Preferences) With(field Field, value string) Preferences {
	switch field {
	case FieldPastBooks:
		p.PastBooks = value
	case FieldBookCount:
		p.BookCount = value
	case FieldPrimaryGenre:
		p.PrimaryGenre = value
	case FieldSecondaryGenre:
		p.SecondaryGenre = value
	case FieldMoviesShows:
		p.MoviesShows = value
	case FieldPace:
		p.Pace = value
	case FieldMood:
		p.Mood = value
	case FieldComplexity:
		p.Complexity = value
	}
	return p
}
