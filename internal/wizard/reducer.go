// Package wizard holds the discovery wizard's state machine.
//
// Reduce is pure: it takes the current State and one Event and returns the
// next State plus the side effects the caller must run (fetching a bundle,
// writing the store). The terminal UI owns the loop that feeds events in
// and executes effects.
package wizard

import (
	"errors"
	"strings"

	"github.com/dhabedank/lumina/internal/core"
)

// User-facing messages.
const (
	MsgFetchFailed = "The archives are temporarily inaccessible."
	MsgArchived    = "Bundle archived successfully."
)

// Archive rejections.
var (
	ErrSignInRequired = &core.ValidationError{Field: "user", Message: "Please sign in to save your discovery to the Archive."}
	ErrNameRequired   = &core.ValidationError{Field: "name", Message: "A name is required to archive a bundle."}
)

// State is everything the wizard shows.
type State struct {
	Step    Step
	Prefs   core.Preferences
	Results *core.DiscoveryResults

	History []core.Session
	Saved   []core.SavedList
	User    *core.User

	Error  string // Last fetch failure, shown on the welcome screen
	Notice string // Blocking message, cleared by DismissNotice

	Naming    bool   // Archive naming prompt is open
	NameDraft string // Suggested name for the prompt
}

// New returns the initial state for a run, seeded with what the store loaded.
func New(history []core.Session, saved []core.SavedList, user *core.User) State {
	if history == nil {
		history = []core.Session{}
	}
	if saved == nil {
		saved = []core.SavedList{}
	}
	return State{
		Step:    StepWelcome,
		Prefs:   core.DefaultPreferences(),
		History: history,
		Saved:   saved,
		User:    user,
	}
}

// Event is an input to Reduce.
type Event interface{ event() }

type (
	// Next advances along the questionnaire. Leaving mood starts a fetch.
	Next struct{}
	// Back moves one step back along Order.
	Back struct{}
	// SetField edits one preference.
	SetField struct {
		Field core.Field
		Value string
	}
	// OpenArchive shows the saved bundles.
	OpenArchive struct{}
	// CloseArchive returns from the archive to the welcome screen.
	CloseArchive struct{}
	// LoadSaved shows a saved bundle as the current results.
	LoadSaved struct{ ID string }
	// Home returns to the welcome screen.
	Home struct{}
	// Refresh re-runs discovery with the current preferences.
	Refresh struct{}
	// FetchSucceeded delivers an enriched bundle for the preferences that
	// were sent with the FetchEffect.
	FetchSucceeded struct {
		Prefs     core.Preferences
		Results   core.DiscoveryResults
		Timestamp int64
	}
	// FetchFailed reports that no bundle could be produced.
	FetchFailed struct{ Err error }
	// RequestArchive asks to save the current results.
	RequestArchive struct{}
	// SubmitName confirms the naming prompt. ID and Timestamp come from the
	// caller so the reducer stays deterministic.
	SubmitName struct {
		Name      string
		ID        string
		Timestamp int64
	}
	// CancelName dismisses the naming prompt.
	CancelName struct{}
	// SignedIn records a signed-in user.
	SignedIn struct{ User core.User }
	// SignedOut returns to guest.
	SignedOut struct{}
	// DeleteSaved removes a saved bundle.
	DeleteSaved struct{ ID string }
	// DismissNotice clears the blocking notice.
	DismissNotice struct{}
	// Notify shows a blocking notice, e.g. a failed sign-in.
	Notify struct{ Message string }
)

func (Next) event()           {}
func (Back) event()           {}
func (SetField) event()       {}
func (OpenArchive) event()    {}
func (CloseArchive) event()   {}
func (LoadSaved) event()      {}
func (Home) event()           {}
func (Refresh) event()        {}
func (FetchSucceeded) event() {}
func (FetchFailed) event()    {}
func (RequestArchive) event() {}
func (SubmitName) event()     {}
func (CancelName) event()     {}
func (SignedIn) event()       {}
func (SignedOut) event()      {}
func (DeleteSaved) event()    {}
func (DismissNotice) event()  {}
func (Notify) event()         {}

// Effect is work the caller must perform after a transition.
type Effect interface{ effect() }

// FetchEffect asks for a new bundle. Exclude lists every book title in history.
type FetchEffect struct {
	Prefs   core.Preferences
	Exclude []string
}

// PersistEffect asks for the three persisted values to be written.
type PersistEffect struct {
	History []core.Session
	Saved   []core.SavedList
	User    *core.User
}

func (FetchEffect) effect()   {}
func (PersistEffect) effect() {}

// Reduce applies ev to s.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Next:
		if s.Step == StepGenres && !s.Prefs.Ready() {
			return s, nil
		}
		if s.Step == StepMood {
			return startFetch(s)
		}
		if next, ok := Forward(s.Step); ok {
			s.Step = next
		}
		return s, nil

	case Back:
		if prev, ok := Backward(s.Step); ok {
			s.Step = prev
		}
		return s, nil

	case SetField:
		s.Prefs = s.Prefs.With(ev.Field, ev.Value)
		return s, nil

	case OpenArchive:
		s.Step = StepArchive
		s.Naming = false
		return s, nil

	case CloseArchive:
		if s.Step == StepArchive {
			s.Step = StepWelcome
		}
		return s, nil

	case LoadSaved:
		for _, list := range s.Saved {
			if list.ID == ev.ID {
				results := list.Results.Clone()
				s.Results = &results
				s.Step = StepResults
				break
			}
		}
		return s, nil

	case Home:
		if s.Step == StepResults || s.Step == StepArchive {
			s.Step = StepWelcome
			s.Naming = false
		}
		return s, nil

	case Refresh:
		if s.Step != StepResults {
			return s, nil
		}
		return startFetch(s)

	case FetchSucceeded:
		results := ev.Results.Clone()
		s.Results = &results
		s.History = core.PushHistory(s.History, core.Session{
			Timestamp:   ev.Timestamp,
			Preferences: ev.Prefs,
			Results:     ev.Results.Clone(),
		})
		s.Step = StepResults
		return s, []Effect{persist(s)}

	case FetchFailed:
		s.Error = MsgFetchFailed
		s.Step = StepWelcome
		return s, nil

	case RequestArchive:
		if s.Results == nil {
			return s, nil
		}
		if s.User == nil {
			s.Notice = ErrSignInRequired.Message
			return s, nil
		}
		s.Naming = true
		s.NameDraft = core.DefaultArchiveName(s.Prefs)
		return s, nil

	case SubmitName:
		if !s.Naming {
			return s, nil
		}
		s.Naming = false
		s.NameDraft = ""
		if s.Results == nil {
			return s, nil
		}
		if err := CanArchive(s.User, ev.Name); err != nil {
			var verr *core.ValidationError
			if errors.As(err, &verr) {
				s.Notice = verr.Message
			}
			return s, nil
		}
		list := core.SavedList{
			ID:          ev.ID,
			Name:        strings.TrimSpace(ev.Name),
			Timestamp:   ev.Timestamp,
			Results:     s.Results.Clone(),
			Preferences: s.Prefs,
		}
		s.Saved = append([]core.SavedList{list}, s.Saved...)
		s.Notice = MsgArchived
		return s, []Effect{persist(s)}

	case CancelName:
		s.Naming = false
		s.NameDraft = ""
		return s, nil

	case SignedIn:
		user := ev.User
		s.User = &user
		return s, []Effect{persist(s)}

	case SignedOut:
		s.User = nil
		return s, []Effect{persist(s)}

	case DeleteSaved:
		kept := make([]core.SavedList, 0, len(s.Saved))
		for _, list := range s.Saved {
			if list.ID != ev.ID {
				kept = append(kept, list)
			}
		}
		if len(kept) == len(s.Saved) {
			return s, nil
		}
		s.Saved = kept
		return s, []Effect{persist(s)}

	case DismissNotice:
		s.Notice = ""
		return s, nil

	case Notify:
		s.Notice = ev.Message
		return s, nil
	}
	return s, nil
}

// CanArchive reports why a bundle cannot be archived under name, or nil.
func CanArchive(user *core.User, name string) error {
	if user == nil {
		return ErrSignInRequired
	}
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}

func startFetch(s State) (State, []Effect) {
	if !s.Prefs.Ready() {
		return s, nil
	}
	s.Step = StepLoading
	s.Error = ""
	return s, []Effect{FetchEffect{
		Prefs:   s.Prefs,
		Exclude: core.ExcludedTitles(s.History),
	}}
}

func persist(s State) PersistEffect {
	return PersistEffect{History: s.History, Saved: s.Saved, User: s.User}
}
