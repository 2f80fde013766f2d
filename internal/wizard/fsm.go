package wizard

// Step is one screen of the discovery wizard.
type Step string

const (
	StepWelcome Step = "welcome"
	StepHistory Step = "history"
	StepGenres  Step = "genres"
	StepMedia   Step = "media"
	StepMood    Step = "mood"
	StepLoading Step = "loading"
	StepResults Step = "results"
	StepArchive Step = "archive"
)

// Order is the linear path used for back navigation.
var Order = []Step{StepWelcome, StepHistory, StepGenres, StepMedia, StepMood, StepResults}

// CollectionSteps are the questionnaire pages, in the order they are shown.
var CollectionSteps = []Step{StepHistory, StepGenres, StepMedia, StepMood}

// forward holds the plain Next transitions. Leaving mood is special-cased
// in the reducer because it starts a fetch.
var forward = map[Step]Step{
	StepWelcome: StepHistory,
	StepHistory: StepGenres,
	StepGenres:  StepMedia,
	StepMedia:   StepMood,
}

var backward = buildBackward(Order)

func buildBackward(order []Step) map[Step]Step {
	m := make(map[Step]Step, len(order)-1)
	for i := 1; i < len(order); i++ {
		m[order[i]] = order[i-1]
	}
	return m
}

// Forward returns the step after s, if s has a plain forward transition.
func Forward(s Step) (Step, bool) {
	next, ok := forward[s]
	return next, ok
}

// Backward returns the step before s in Order. Welcome and steps outside
// Order have none.
func Backward(s Step) (Step, bool) {
	prev, ok := backward[s]
	return prev, ok
}

// Index returns the 1-based position of s among the collection steps, or 0.
func Index(s Step) int {
	for i, c := range CollectionSteps {
		if c == s {
			return i + 1
		}
	}
	return 0
}
