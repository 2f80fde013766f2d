package core

import (
	"fmt"
	"strings"
)

// SystemPrompt is the system instruction for discovery bundles.
const SystemPrompt = `You are a world-class book recommendation engine.
Your goal is to provide 3-5 unique, personalized book suggestions based on a user's reading history, favorite movies/TV shows, and current mood.

Rules:
1. Diversity: Include a mix of popular bestsellers, critically acclaimed works, and hidden gems.
2. Novelty: Do not suggest common books the user likely already read if they are a heavy reader.
3. Analysis: Map the themes and tones of their favorite movies/TV shows to literary equivalents.
4. Explainability: Provide a compelling reason for each choice that explicitly references their inputs.
5. Tone: Professional, encouraging, and literate.
You must also provide related movie or series recommendations that complement the books.

` + ResponseFormat

// ResponseFormat pins the JSON shape. Providers without native schema
// support only have this text to go on, so it is part of every system prompt.
const ResponseFormat = `## OUTPUT FORMAT

Output ONLY a JSON object. No markdown fences, no commentary.

{
  "books": [
    {
      "title": "string",
      "author": "string",
      "genres": ["string"],
      "description": "string",
      "reason": "string"
    }
  ],
  "movies": [
    {
      "title": "string",
      "year": "string",
      "type": "Movie or Series",
      "genres": ["string"],
      "description": "string",
      "reason": "string"
    }
  ]
}

Every field is required. "books" MUST contain exactly 4 entries and "movies" MUST contain 2 or 3 entries.`

// UserPromptTemplate embeds every preference verbatim.
const UserPromptTemplate = `
User Profile:
- Books previously read: %s
- Total books read: %s
- Favorite Genres: %s, %s
- Movies/TV Shows liked: %s
- Preferred Pace: %s
- Preferred Mood: %s
- Desired Complexity: %s

Previous Recommendations (DO NOT REPEAT): %s

Please provide a curated "Discovery Bundle" containing:
1. Exactly 4 Book Recommendations.
2. 2-3 Movie or TV Series Recommendations that share the same thematic or emotional DNA as the book recommendations and the user's tastes.
`

// BuildUserPrompt renders the user prompt for prefs, asking the model to
// avoid every title in exclude.
func BuildUserPrompt(prefs Preferences, exclude []string) string {
	return fmt.Sprintf(
		UserPromptTemplate,
		prefs.PastBooks,
		prefs.BookCount,
		prefs.PrimaryGenre,
		prefs.SecondaryGenre,
		prefs.MoviesShows,
		prefs.Pace,
		prefs.Mood,
		prefs.Complexity,
		strings.Join(exclude, ", "),
	)
}
