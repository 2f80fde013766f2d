package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/dhabedank/lumina/internal/core"
	"github.com/dhabedank/lumina/internal/identity"
	"github.com/dhabedank/lumina/internal/wizard"
)

// Runner produces an enriched bundle. core.Pipeline implements it.
type Runner interface {
	Run(ctx context.Context, prefs core.Preferences, exclude []string) (*core.DiscoveryResults, error)
}

// Persister writes the wizard's durable state. store.Store implements it.
type Persister interface {
	Save(ctx context.Context, history []core.Session, saved []core.SavedList, user *core.User) error
}

// Deps are the collaborators of the wizard program.
type Deps struct {
	Pipeline Runner
	Store    Persister
	Identity identity.Provider
	Logger   zerolog.Logger

	// Provider and Model label the loading screen and its cost estimate.
	Provider string
	Model    string

	// Now defaults to time.Now. NewID names archived bundles.
	Now   func() time.Time
	NewID func() (string, error)
}

// Messages returned by commands.
type (
	fetchDoneMsg struct {
		prefs   core.Preferences
		results *core.DiscoveryResults
		err     error
	}
	persistDoneMsg struct{ err error }
	loginDoneMsg   struct {
		user *core.User
		err  error
	}
	logoutDoneMsg struct{ err error }
)

var (
	errNoIDSource   = errors.New("no id generator configured")
	errEmptyResults = errors.New("pipeline returned no results")
)

// Wizard is the Bubble Tea model for the discovery wizard. All state
// transitions go through wizard.Reduce; this type owns the widgets and
// runs the effects.
type Wizard struct {
	deps  Deps
	state wizard.State
	ctx   context.Context

	pastBooks   textarea.Model
	moviesShows textarea.Model
	bookCount   choice
	primary     choice
	secondary   choice
	pace        choice
	mood        choice
	complexity  choice
	focus       int

	nameInput textinput.Model
	archive   list.Model
	loading   Loading
	writes    *writeQueue

	width  int
	height int
	quit   bool
}

// NewWizard builds the program model from persisted state.
func NewWizard(ctx context.Context, deps Deps, state wizard.State) Wizard {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	w := Wizard{
		deps:    deps,
		state:   state,
		ctx:     ctx,
		loading: NewLoading(deps.Provider, deps.Model),
		writes:  newWriteQueue(deps.Store),
		width:   80,
		height:  24,
	}

	w.pastBooks = newTextarea("The Hobbit, Dune, Piranesi…", state.Prefs.PastBooks)
	w.moviesShows = newTextarea("Arrival, Severance, Spirited Away…", state.Prefs.MoviesShows)

	w.bookCount = newChoice("Books read per year", core.FieldBookCount, core.BookCountOptions, state.Prefs.BookCount, false)
	w.primary = newChoice("Primary genre (required)", core.FieldPrimaryGenre, core.Genres, state.Prefs.PrimaryGenre, false)
	w.secondary = newChoice("Secondary genre", core.FieldSecondaryGenre, core.Genres, state.Prefs.SecondaryGenre, true)
	w.pace = newChoice("Pace", core.FieldPace, core.Paces, state.Prefs.Pace, false)
	w.mood = newChoice("Mood", core.FieldMood, core.Moods, state.Prefs.Mood, false)
	w.complexity = newChoice("Complexity", core.FieldComplexity, core.Complexities, state.Prefs.Complexity, false)

	w.nameInput = textinput.New()
	w.nameInput.CharLimit = 80
	w.nameInput.Prompt = "Name: "

	w.archive = newArchiveList(state.Saved, w.width, w.height)
	return w
}

func newTextarea(placeholder, value string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(4)
	ta.CharLimit = 2000
	// enter advances the wizard instead of inserting a newline
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.SetValue(value)
	return ta
}

// State exposes the reducer state, mainly for tests and the caller's
// final summary.
func (w Wizard) State() wizard.State {
	return w.state
}

// Init implements tea.Model.
func (w Wizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width, w.height = msg.Width, msg.Height
		w.archive.SetSize(msg.Width, max(msg.Height-6, 5))
		return w, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		w.loading, cmd = w.loading.Update(msg)
		return w, cmd

	case fetchDoneMsg:
		w.loading = w.loading.Stop(w.deps.Now())
		if msg.err == nil && msg.results == nil {
			msg.err = errEmptyResults
		}
		if msg.err != nil {
			if core.IsGenerationError(msg.err) {
				w.deps.Logger.Warn().Err(msg.err).Msg("model produced no usable bundle")
			} else {
				w.deps.Logger.Error().Err(msg.err).Msg("discovery failed")
			}
			return w.dispatch(wizard.FetchFailed{Err: msg.err})
		}
		return w.dispatch(wizard.FetchSucceeded{
			Prefs:     msg.prefs,
			Results:   *msg.results,
			Timestamp: w.deps.Now().UnixMilli(),
		})

	case persistDoneMsg:
		if msg.err != nil {
			w.deps.Logger.Error().Err(msg.err).Msg("failed to persist state")
		}
		return w, nil

	case loginDoneMsg:
		if msg.err != nil {
			w.deps.Logger.Warn().Err(msg.err).Msg("sign-in failed")
			return w.dispatch(wizard.Notify{Message: "Sign-in failed: " + msg.err.Error()})
		}
		return w.dispatch(wizard.SignedIn{User: *msg.user})

	case logoutDoneMsg:
		if msg.err != nil {
			w.deps.Logger.Warn().Err(msg.err).Msg("sign-out failed")
			return w.dispatch(wizard.Notify{Message: "Sign-out failed: " + msg.err.Error()})
		}
		return w.dispatch(wizard.SignedOut{})

	case tea.KeyMsg:
		return w.handleKey(msg)
	}

	return w, nil
}

func (w Wizard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		w.quit = true
		return w, tea.Quit
	}

	// A notice blocks everything until dismissed
	if w.state.Notice != "" {
		if key == "enter" || key == "esc" || key == " " {
			return w.dispatch(wizard.DismissNotice{})
		}
		return w, nil
	}

	if w.state.Naming {
		return w.handleNamingKey(msg)
	}

	switch key {
	case "ctrl+l":
		return w, w.toggleSignIn()
	case "ctrl+o":
		if w.state.Step != wizard.StepLoading {
			return w.dispatch(wizard.OpenArchive{})
		}
	}

	switch w.state.Step {
	case wizard.StepWelcome:
		switch key {
		case "enter":
			return w.dispatch(wizard.Next{})
		case "a":
			return w.dispatch(wizard.OpenArchive{})
		case "q":
			w.quit = true
			return w, tea.Quit
		}
		return w, nil

	case wizard.StepHistory, wizard.StepGenres, wizard.StepMedia, wizard.StepMood:
		return w.handleFormKey(msg)

	case wizard.StepResults:
		switch key {
		case "s":
			return w.dispatch(wizard.RequestArchive{})
		case "r":
			return w.dispatch(wizard.Refresh{})
		case "h":
			return w.dispatch(wizard.Home{})
		case "a":
			return w.dispatch(wizard.OpenArchive{})
		case "esc", "left":
			return w.dispatch(wizard.Back{})
		case "q":
			w.quit = true
			return w, tea.Quit
		}
		return w, nil

	case wizard.StepArchive:
		return w.handleArchiveKey(msg)
	}

	return w, nil
}

func (w Wizard) handleNamingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		listID, err := w.newID()
		if err != nil {
			w.deps.Logger.Error().Err(err).Msg("failed to generate bundle id")
			return w.dispatch(wizard.CancelName{})
		}
		return w.dispatch(wizard.SubmitName{
			Name:      w.nameInput.Value(),
			ID:        listID,
			Timestamp: w.deps.Now().UnixMilli(),
		})
	case "esc":
		return w.dispatch(wizard.CancelName{})
	}

	var cmd tea.Cmd
	w.nameInput, cmd = w.nameInput.Update(msg)
	return w, cmd
}

func (w Wizard) handleArchiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if w.archive.FilterState() == list.Filtering {
		var cmd tea.Cmd
		w.archive, cmd = w.archive.Update(msg)
		return w, cmd
	}

	switch msg.String() {
	case "esc", "q":
		return w.dispatch(wizard.CloseArchive{})
	case "enter":
		if item, ok := w.archive.SelectedItem().(archiveItem); ok {
			return w.dispatch(wizard.LoadSaved{ID: item.list.ID})
		}
		return w, nil
	case "d", "delete":
		if item, ok := w.archive.SelectedItem().(archiveItem); ok {
			return w.dispatch(wizard.DeleteSaved{ID: item.list.ID})
		}
		return w, nil
	}

	var cmd tea.Cmd
	w.archive, cmd = w.archive.Update(msg)
	return w, cmd
}

// formFields returns how many focusable fields the current step has.
func (w Wizard) formFields() int {
	switch w.state.Step {
	case wizard.StepHistory, wizard.StepGenres:
		return 2
	case wizard.StepMood:
		return 3
	default:
		return 1
	}
}

func (w Wizard) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return w.dispatch(wizard.Next{})
	case "esc":
		return w.dispatch(wizard.Back{})
	case "tab":
		return w.moveFocus(1)
	case "shift+tab":
		return w.moveFocus(-1)
	}

	if c := w.focusedChoice(); c != nil {
		switch msg.String() {
		case "right", "l", " ":
			*c = c.next()
		case "left", "h":
			*c = c.prev()
		case "down", "j":
			return w.moveFocus(1)
		case "up", "k":
			return w.moveFocus(-1)
		default:
			return w, nil
		}
		return w.dispatch(wizard.SetField{Field: c.field, Value: c.value()})
	}

	if ta, field := w.focusedTextarea(); ta != nil {
		var cmd tea.Cmd
		*ta, cmd = ta.Update(msg)
		if ta.Value() != fieldValue(w.state.Prefs, field) {
			next, _ := w.reduce(wizard.SetField{Field: field, Value: ta.Value()})
			return next, cmd
		}
		return w, cmd
	}

	return w, nil
}

func (w Wizard) moveFocus(delta int) (tea.Model, tea.Cmd) {
	n := w.formFields()
	w.focus = (w.focus + delta + n) % n
	cmd := w.syncFocus()
	return w, cmd
}

func fieldValue(p core.Preferences, field core.Field) string {
	switch field {
	case core.FieldPastBooks:
		return p.PastBooks
	case core.FieldMoviesShows:
		return p.MoviesShows
	}
	return ""
}

// focusedChoice returns the selector under focus, if any.
func (w *Wizard) focusedChoice() *choice {
	switch w.state.Step {
	case wizard.StepHistory:
		if w.focus == 1 {
			return &w.bookCount
		}
	case wizard.StepGenres:
		if w.focus == 0 {
			return &w.primary
		}
		return &w.secondary
	case wizard.StepMood:
		return []*choice{&w.pace, &w.mood, &w.complexity}[w.focus]
	}
	return nil
}

func (w *Wizard) focusedTextarea() (*textarea.Model, core.Field) {
	switch w.state.Step {
	case wizard.StepHistory:
		if w.focus == 0 {
			return &w.pastBooks, core.FieldPastBooks
		}
	case wizard.StepMedia:
		return &w.moviesShows, core.FieldMoviesShows
	}
	return nil, ""
}

// syncFocus focuses the textarea under focus and blurs the others.
func (w *Wizard) syncFocus() tea.Cmd {
	w.pastBooks.Blur()
	w.moviesShows.Blur()
	if ta, _ := w.focusedTextarea(); ta != nil {
		return ta.Focus()
	}
	return nil
}

func (w Wizard) toggleSignIn() tea.Cmd {
	if w.deps.Identity == nil {
		return nil
	}
	provider, ctx := w.deps.Identity, w.ctx
	if w.state.User != nil {
		return func() tea.Msg {
			return logoutDoneMsg{err: provider.Logout(ctx)}
		}
	}
	return func() tea.Msg {
		user, err := provider.Login(ctx)
		return loginDoneMsg{user: user, err: err}
	}
}

func (w Wizard) newID() (string, error) {
	if w.deps.NewID == nil {
		return "", errNoIDSource
	}
	return w.deps.NewID()
}

// dispatch runs ev through the reducer and returns the commands for its effects.
func (w Wizard) dispatch(ev wizard.Event) (tea.Model, tea.Cmd) {
	next, cmd := w.reduce(ev)
	return next, cmd
}

func (w Wizard) reduce(ev wizard.Event) (Wizard, tea.Cmd) {
	prev := w.state
	var effects []wizard.Effect
	w.state, effects = wizard.Reduce(w.state, ev)

	var cmds []tea.Cmd
	if w.state.Step != prev.Step {
		w.focus = 0
		cmds = append(cmds, w.syncFocus())
		if w.state.Step == wizard.StepArchive {
			w.archive = newArchiveList(w.state.Saved, w.width, w.height)
		}
	}
	if w.state.Step == wizard.StepArchive && len(w.state.Saved) != len(prev.Saved) {
		w.archive = newArchiveList(w.state.Saved, w.width, w.height)
	}
	if w.state.Naming && !prev.Naming {
		w.nameInput.SetValue(w.state.NameDraft)
		w.nameInput.CursorEnd()
		cmds = append(cmds, w.nameInput.Focus())
	}
	if !w.state.Naming && prev.Naming {
		w.nameInput.Blur()
	}

	for _, effect := range effects {
		switch e := effect.(type) {
		case wizard.FetchEffect:
			var tick tea.Cmd
			inputChars := len(core.SystemPrompt) + len(core.BuildUserPrompt(e.Prefs, e.Exclude))
			w.loading, tick = w.loading.Start(inputChars, w.deps.Now())
			cmds = append(cmds, w.fetchCmd(e), tick)
		case wizard.PersistEffect:
			cmds = append(cmds, w.persistCmd(e))
		}
	}

	return w, batch(cmds)
}

func batch(cmds []tea.Cmd) tea.Cmd {
	var valid []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return tea.Batch(valid...)
	}
}

func (w Wizard) fetchCmd(e wizard.FetchEffect) tea.Cmd {
	pipeline, ctx, logger := w.deps.Pipeline, w.ctx, w.deps.Logger
	return func() tea.Msg {
		logger.Info().
			Str("genre", e.Prefs.PrimaryGenre).
			Int("excluded", len(e.Exclude)).
			Msg("starting discovery")
		results, err := pipeline.Run(ctx, e.Prefs, e.Exclude)
		return fetchDoneMsg{prefs: e.Prefs, results: results, err: err}
	}
}

func (w Wizard) persistCmd(e wizard.PersistEffect) tea.Cmd {
	done := w.writes.submit(w.ctx, e)
	return func() tea.Msg {
		return persistDoneMsg{err: <-done}
	}
}

// Flush waits for pending store writes. Call it after the program exits
// and before the store is closed.
func (w Wizard) Flush() {
	w.writes.flush()
}
