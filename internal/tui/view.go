package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/dhabedank/lumina/internal/core"
	"github.com/dhabedank/lumina/internal/wizard"
)

// stepTitles label the questionnaire pages.
var stepTitles = map[wizard.Step]string{
	wizard.StepHistory: "Reading History",
	wizard.StepGenres:  "Genres",
	wizard.StepMedia:   "On Screen",
	wizard.StepMood:    "Mood & Pace",
}

// View implements tea.Model.
func (w Wizard) View() string {
	if w.quit {
		return ""
	}

	var body string
	switch w.state.Step {
	case wizard.StepWelcome:
		body = w.welcomeView()
	case wizard.StepHistory:
		body = w.historyView()
	case wizard.StepGenres:
		body = w.genresView()
	case wizard.StepMedia:
		body = w.mediaView()
	case wizard.StepMood:
		body = w.moodView()
	case wizard.StepLoading:
		body = w.loading.View(w.deps.Now())
	case wizard.StepResults:
		body = w.resultsView()
	case wizard.StepArchive:
		body = w.archive.View()
	}

	var b strings.Builder
	b.WriteString(w.headerView())
	b.WriteString("\n\n")
	if wizard.Index(w.state.Step) > 0 {
		b.WriteString(progressView(w.state.Step))
		b.WriteString("\n\n")
	}
	b.WriteString(body)

	switch {
	case w.state.Notice != "":
		b.WriteString("\n")
		b.WriteString(NoticeStyle.Render(w.state.Notice + "\n\n" + HelpStyle.Render("enter: ok")))
		b.WriteString("\n")
	case w.state.Naming:
		b.WriteString("\n")
		b.WriteString(HighlightBoxStyle.Render(
			TitleStyle.Render("Archive this bundle") + "\n\n" +
				w.nameInput.View() + "\n\n" +
				HelpStyle.Render("enter: save • esc: cancel")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("  " + w.helpLine()))
	return b.String()
}

func (w Wizard) headerView() string {
	who := UnselectedStyle.Render("Guest")
	if w.state.User != nil {
		who = SuccessStyle.Render(w.state.User.Name)
	}
	return fmt.Sprintf("%s  %s  %s",
		TitleStyle.Render("LUMINA"),
		HelpStyle.Render("literary discovery"),
		who,
	)
}

// progressView renders "✓ Reading History → [Genres] → ○ On Screen → ○ Mood & Pace".
func progressView(current wizard.Step) string {
	pos := wizard.Index(current)
	parts := make([]string, 0, len(wizard.CollectionSteps))
	for i, s := range wizard.CollectionSteps {
		switch {
		case i+1 == pos:
			parts = append(parts, SelectedStyle.Render("["+stepTitles[s]+"]"))
		case i+1 < pos:
			parts = append(parts, SuccessStyle.Render("✓ "+stepTitles[s]))
		default:
			parts = append(parts, UnselectedStyle.Render("○ "+stepTitles[s]))
		}
	}
	return "  " + strings.Join(parts, " → ")
}

func (w Wizard) welcomeView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Find your next favourite book"))
	b.WriteString("\n\n")
	b.WriteString("Answer four short questions and we will pull four books from the\n")
	b.WriteString("stacks, plus the films and series that share their soul.\n")
	if n := len(w.state.History); n > 0 {
		fmt.Fprintf(&b, "\n%s\n", HelpStyle.Render(fmt.Sprintf("%d past discoveries on record; their books will not be suggested again.", n)))
	}
	if w.state.Error != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(w.state.Error))
		b.WriteString("\n")
	}
	return b.String()
}

func (w Wizard) historyView() string {
	var b strings.Builder
	b.WriteString(StepStyle.Render("What have you loved reading?"))
	b.WriteString("\n\n")
	b.WriteString(w.pastBooks.View())
	b.WriteString("\n\n")
	b.WriteString(w.bookCount.view(w.focus == 1))
	return b.String()
}

func (w Wizard) genresView() string {
	var b strings.Builder
	b.WriteString(StepStyle.Render("Which shelves do you wander?"))
	b.WriteString("\n\n")
	b.WriteString(w.primary.view(w.focus == 0))
	b.WriteString("\n")
	b.WriteString(w.secondary.view(w.focus == 1))
	if !w.state.Prefs.Ready() {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render("Choose a primary genre to continue."))
		b.WriteString("\n")
	}
	return b.String()
}

func (w Wizard) mediaView() string {
	var b strings.Builder
	b.WriteString(StepStyle.Render("Which films and series stayed with you?"))
	b.WriteString("\n\n")
	b.WriteString(w.moviesShows.View())
	b.WriteString("\n")
	return b.String()
}

func (w Wizard) moodView() string {
	var b strings.Builder
	b.WriteString(StepStyle.Render("How should your next read feel?"))
	b.WriteString("\n\n")
	b.WriteString(w.pace.view(w.focus == 0))
	b.WriteString("\n")
	b.WriteString(w.mood.view(w.focus == 1))
	b.WriteString("\n")
	b.WriteString(w.complexity.view(w.focus == 2))
	return b.String()
}

func (w Wizard) resultsView() string {
	if w.state.Results == nil {
		return HelpStyle.Render("No results yet.")
	}
	cardWidth := max(w.width-6, 40)

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Your Discovery"))
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render("BOOKS"))
	b.WriteString("\n\n")
	for _, book := range w.state.Results.Books {
		b.WriteString(CardStyle.Width(cardWidth).Render(bookCard(book)))
		b.WriteString("\n")
	}

	b.WriteString(SubtitleStyle.Render("ON SCREEN"))
	b.WriteString("\n\n")
	for _, media := range w.state.Results.Movies {
		b.WriteString(CardStyle.Width(cardWidth).Render(mediaCard(media)))
		b.WriteString("\n")
	}

	if summary := w.loading.Summary(); summary != "" {
		b.WriteString("  ")
		b.WriteString(summary)
		b.WriteString("\n")
	}
	return b.String()
}

func bookCard(book core.BookRecommendation) string {
	lines := []string{
		ItemTitleStyle.Render(book.Title) + "  " + UnselectedStyle.Render("by "+book.Author),
		tags(book.Genres),
		book.Description,
		ReasonStyle.Render("Why: " + book.Reason),
		artwork("Cover", book.CoverURL),
	}
	return strings.Join(lines, "\n")
}

func mediaCard(media core.MediaRecommendation) string {
	lines := []string{
		ItemTitleStyle.Render(media.Title) + "  " + UnselectedStyle.Render(fmt.Sprintf("%s · %s", media.Type, media.Year)),
		tags(media.Genres),
		media.Description,
		ReasonStyle.Render("Why: " + media.Reason),
		artwork("Poster", media.PosterURL),
	}
	return strings.Join(lines, "\n")
}

// tags renders at most the first two genres.
func tags(genres []string) string {
	if len(genres) > 2 {
		genres = genres[:2]
	}
	out := make([]string, len(genres))
	for i, g := range genres {
		out[i] = TagStyle.Render("#" + g)
	}
	return strings.Join(out, " ")
}

func artwork(kind, url string) string {
	if url == "" {
		return HelpStyle.Render(kind + ": artwork unavailable")
	}
	return HelpStyle.Render(kind + ": " + url)
}

func (w Wizard) helpLine() string {
	if w.state.Notice != "" || w.state.Naming {
		return ""
	}
	var keys string
	switch w.state.Step {
	case wizard.StepWelcome:
		keys = "enter: begin • a: archive"
	case wizard.StepHistory, wizard.StepGenres, wizard.StepMood:
		keys = "tab: next field • ←/→: change • enter: continue • esc: back"
	case wizard.StepMedia:
		keys = "enter: continue • esc: back"
	case wizard.StepLoading:
		return "ctrl+c: quit"
	case wizard.StepResults:
		keys = "s: save to archive • r: refresh • h: home • a: archive • esc: back"
	case wizard.StepArchive:
		keys = "enter: open • d: delete • /: filter • esc: close"
	}

	account := "ctrl+l: sign in"
	if w.state.User != nil {
		account = "ctrl+l: sign out"
	}
	return keys + " • " + account + " • ctrl+c: quit"
}

// archiveItem adapts a saved bundle to the list widget.
type archiveItem struct {
	list core.SavedList
}

func (a archiveItem) Title() string { return a.list.Name }

// Description shows the date plus the first two books and first two titles
// on screen.
func (a archiveItem) Description() string {
	var books, media []string
	for i, b := range a.list.Results.Books {
		if i == 2 {
			break
		}
		books = append(books, b.Title)
	}
	for i, m := range a.list.Results.Movies {
		if i == 2 {
			break
		}
		media = append(media, m.Title)
	}
	date := time.UnixMilli(a.list.Timestamp).Format("Jan 2, 2006")
	return fmt.Sprintf("%s · %s · %s", date, strings.Join(books, ", "), strings.Join(media, ", "))
}

func (a archiveItem) FilterValue() string { return a.list.Name }

func newArchiveList(saved []core.SavedList, width, height int) list.Model {
	items := make([]list.Item, len(saved))
	for i, s := range saved {
		items[i] = archiveItem{list: s}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(ColorPrimary).BorderForeground(ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(ColorMuted).BorderForeground(ColorPrimary)

	l := list.New(items, delegate, width, max(height-6, 5))
	l.Title = "The Archive"
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(ColorInk).Background(ColorPrimary).Padding(0, 1)
	l.SetShowStatusBar(len(saved) > 0)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("bundle", "bundles")
	return l
}
