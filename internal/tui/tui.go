// Package tui provides a Bubble Tea terminal user interface for movieshelf.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/handiism/movieshelf/internal/collection"
	"github.com/handiism/movieshelf/internal/config"
	"github.com/handiism/movieshelf/internal/format"
	"github.com/handiism/movieshelf/internal/model"
	"github.com/handiism/movieshelf/internal/session"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)
)

const historySize = 5

const helpText = `Enter the details of a movie and pick a genre with ← and →.
Press enter to add it to the collection.

In the table, press e to edit the selected movie and d to delete it.
Once you have added movies, press ctrl+s to save them as CSV, Binary,
XML or SQLite, and ctrl+o to load a saved collection.`

// State represents the current UI state.
type State int

const (
	StateWelcome State = iota
	StateSession
	StatePrompt
)

type promptMode int

const (
	promptSave promptMode = iota
	promptLoad
)

type focus int

const (
	focusName focus = iota
	focusYear
	focusGenre
	focusTable
	focusCount
)

// resultMsg carries the outcome of a session action run as a command.
type resultMsg struct {
	result session.Result
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	session  *session.Session
	settings *config.Settings
	keys     keyMap
	help     help.Model
	spinner  spinner.Model

	// Movie form
	name    textinput.Model
	year    textinput.Model
	genres  []model.Genre
	genre   int // -1 while the placeholder is shown
	focus   focus
	editing *model.Movie

	// Collection view
	table  table.Model
	movies []model.Movie

	// Save/load prompt
	prompt     promptMode
	formats    []format.Format
	formatIdx  int
	path       textinput.Model
	promptFrom State

	history  []session.Result
	showHelp bool
	busy     bool

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewModel creates a new TUI model driving sess.
func NewModel(sess *session.Session, settings *config.Settings) Model {
	name := textinput.New()
	name.Placeholder = "Movie name"
	name.CharLimit = 200
	name.Width = 40

	year := textinput.New()
	year.Placeholder = "Release year"
	year.CharLimit = 4
	year.Width = 12

	path := textinput.New()
	path.Placeholder = "File path"
	path.CharLimit = 1024
	path.Width = 60

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 40},
			{Title: "Year", Width: 6},
			{Title: "Genre", Width: 12},
		}),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#6C757D")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#1B1B1B")).
		Background(lipgloss.Color("#4ECDC4"))
	tbl.SetStyles(styles)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	formats := sess.Formats()
	formatIdx := 0
	for i, f := range formats {
		if f == settings.DefaultFormat {
			formatIdx = i
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateWelcome,
		session:   sess,
		settings:  settings,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		name:      name,
		year:      year,
		genres:    model.Genres(),
		genre:     -1,
		table:     tbl,
		formats:   formats,
		formatIdx: formatIdx,
		path:      path,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(min(max(msg.Height-18, 5), 25))
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		m.busy = false
		m.record(msg.result)
		m.refreshTable()
		if msg.result.Level == session.LevelSuccess {
			m.state = StateSession
			m.resetForm()
			return m, m.setFocus(focusName)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.cancel()
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Help, m.keys.Cancel) {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.String() == "f1" || (key.Matches(msg, m.keys.Help) && !m.typing()) {
			m.showHelp = true
			return m, nil
		}

		switch m.state {
		case StateWelcome:
			return m.updateWelcome(msg)
		case StateSession:
			return m.updateSession(msg)
		case StatePrompt:
			return m.updatePrompt(msg)
		}
	}

	return m.updateFocused(msg)
}

func (m Model) updateWelcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Exit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.NewSession):
		m.record(m.session.NewSession())
		m.state = StateSession
		m.resetForm()
		m.refreshTable()
		return m, m.setFocus(focusName)

	case key.Matches(msg, m.keys.Demo):
		return m.run(m.session.OpenDemo)

	case key.Matches(msg, m.keys.Open):
		return m.openPrompt(promptLoad)
	}
	return m, nil
}

func (m Model) updateSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		if !m.session.CanSave() {
			// Reports the empty collection without touching the disk.
			m.record(m.session.OnSave(m.ctx, m.currentFormat(), ""))
			return m, nil
		}
		return m.openPrompt(promptSave)

	case key.Matches(msg, m.keys.Load):
		return m.openPrompt(promptLoad)

	case key.Matches(msg, m.keys.Close):
		m.record(m.session.CloseSession())
		m.history = nil
		m.state = StateWelcome
		m.resetForm()
		m.refreshTable()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, m.keys.Cancel):
		if m.editing != nil {
			m.resetForm()
			return m, m.setFocus(focusName)
		}
		return m, m.setFocus(focusTable)
	}

	switch m.focus {
	case focusGenre:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cycleGenre(-1)
			return m, nil
		case key.Matches(msg, m.keys.Right):
			m.cycleGenre(1)
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
		return m, nil

	case focusTable:
		switch {
		case key.Matches(msg, m.keys.Delete):
			if mv, ok := m.selected(); ok {
				m.record(m.session.OnDelete(mv))
				m.refreshTable()
			}
			return m, nil
		case key.Matches(msg, m.keys.Edit, m.keys.Submit):
			if mv, ok := m.selected(); ok {
				m.startEdit(mv)
				return m, m.setFocus(focusName)
			}
			return m, nil
		}

	default:
		if key.Matches(msg, m.keys.Submit) {
			return m.submit()
		}
	}

	return m.updateFocused(msg)
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.state = m.promptFrom
		if m.state == StateSession {
			return m, m.setFocus(m.focus)
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.cycleFormat(1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.cycleFormat(-1)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		path := strings.TrimSpace(m.path.Value())
		if path == "" {
			m.record(session.Result{Level: session.LevelWarning, Message: "Please enter a file path!"})
			return m, nil
		}
		f := m.currentFormat()
		if m.prompt == promptSave {
			return m.run(func(ctx context.Context) session.Result {
				return m.session.OnSave(ctx, f, path)
			})
		}
		return m.run(func(ctx context.Context) session.Result {
			return m.session.OnLoad(ctx, f, path)
		})
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the component that has focus.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.state == StatePrompt:
		m.path, cmd = m.path.Update(msg)
	case m.state != StateSession:
	case m.focus == focusName:
		m.name, cmd = m.name.Update(msg)
	case m.focus == focusYear:
		m.year, cmd = m.year.Update(msg)
	case m.focus == focusTable:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// run executes a session action off the UI loop. Only one action runs at a
// time; keys are ignored until its result arrives.
func (m Model) run(action func(context.Context) session.Result) (tea.Model, tea.Cmd) {
	m.busy = true
	ctx := m.ctx
	return m, tea.Batch(
		func() tea.Msg { return resultMsg{result: action(ctx)} },
		m.spinner.Tick,
	)
}

func (m Model) openPrompt(mode promptMode) (tea.Model, tea.Cmd) {
	m.prompt = mode
	m.promptFrom = m.state
	m.state = StatePrompt
	m.path.SetValue(m.session.DefaultPath(m.currentFormat(), "movies"))
	m.path.CursorEnd()
	m.name.Blur()
	m.year.Blur()
	m.table.Blur()
	return m, m.path.Focus()
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	var res session.Result
	if m.editing != nil {
		_, res = m.session.OnEdit(*m.editing, m.name.Value(), m.year.Value(), m.genreValue())
	} else {
		_, res = m.session.OnAdd(m.name.Value(), m.year.Value(), m.genreValue())
	}
	m.record(res)
	if !res.Failed() {
		m.resetForm()
		m.refreshTable()
		return *m, m.setFocus(focusName)
	}
	return *m, nil
}

func (m *Model) startEdit(mv model.Movie) {
	m.editing = &mv
	m.name.SetValue(mv.Name)
	m.year.SetValue(strconv.Itoa(mv.ReleaseYear))
	m.genre = -1
	for i, g := range m.genres {
		if g == mv.Genre {
			m.genre = i
		}
	}
	m.record(session.Result{Level: session.LevelInfo, Message: "Editing " + mv.Name})
}

func (m *Model) resetForm() {
	m.editing = nil
	m.name.SetValue("")
	m.year.SetValue("")
	m.genre = -1
}

// setFocus moves focus to f and returns the command of the focused input.
func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.year.Blur()
	m.path.Blur()
	m.table.Blur()

	switch f {
	case focusName:
		return m.name.Focus()
	case focusYear:
		return m.year.Focus()
	case focusTable:
		m.table.Focus()
	}
	return nil
}

// typing reports whether keys currently go into a text field.
func (m Model) typing() bool {
	if m.state == StatePrompt {
		return true
	}
	return m.state == StateSession && (m.focus == focusName || m.focus == focusYear)
}

func (m *Model) cycleGenre(step int) {
	n := len(m.genres) + 1 // plus the placeholder
	m.genre = (m.genre+1+step+n)%n - 1
}

func (m Model) genreValue() string {
	if m.genre < 0 || m.genre >= len(m.genres) {
		return model.GenrePlaceholder
	}
	return m.genres[m.genre].String()
}

func (m *Model) cycleFormat(step int) {
	if len(m.formats) == 0 {
		return
	}
	m.formatIdx = (m.formatIdx + step + len(m.formats)) % len(m.formats)

	path := m.path.Value()
	if ext := filepath.Ext(path); ext != "" {
		m.path.SetValue(strings.TrimSuffix(path, ext) + m.currentFormat().Extension())
		m.path.CursorEnd()
	}
}

func (m Model) currentFormat() format.Format {
	if len(m.formats) == 0 {
		return m.settings.DefaultFormat
	}
	return m.formats[m.formatIdx]
}

func (m Model) selected() (model.Movie, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.movies) {
		return model.Movie{}, false
	}
	return m.movies[i], true
}

// record appends a result to the activity log. Empty messages are skipped.
func (m *Model) record(res session.Result) {
	if res.Message == "" {
		return
	}
	m.history = append(m.history, res)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

func (m *Model) refreshTable() {
	m.movies = m.session.Movies()
	rows := make([]table.Row, len(m.movies))
	for i, mv := range m.movies {
		rows[i] = table.Row{mv.Name, strconv.Itoa(mv.ReleaseYear), mv.Genre.String()}
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎬 Movieshelf"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Keep track of your movie collection"))
	b.WriteString("\n\n")

	switch {
	case m.showHelp:
		b.WriteString(boxStyle.Render(subtitleStyle.Render("About") + "\n\n" + helpText))
		b.WriteString("\n")
	case m.state == StateWelcome:
		b.WriteString(m.viewWelcome())
	case m.state == StateSession:
		b.WriteString(m.viewSession())
	case m.state == StatePrompt:
		b.WriteString(m.viewPrompt())
	}

	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Working..."))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHistory())

	// Footer
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.shortHelp()))

	return b.String()
}

func (m Model) viewWelcome() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Welcome!"))
	b.WriteString("\n\n")
	b.WriteString("  n  Start a new session\n")
	b.WriteString("  o  Open the demonstration session\n")
	b.WriteString("  l  Load a saved collection\n")
	b.WriteString("  q  Quit\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Data directory: %s", m.settings.DataDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewSession() string {
	var b strings.Builder

	title := "Add a movie"
	if m.editing != nil {
		title = "Edit " + m.editing.Name
	}
	b.WriteString(subtitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Name ", focusName))
	b.WriteString(m.name.View())
	b.WriteString("\n")
	b.WriteString(m.fieldLabel("Year ", focusYear))
	b.WriteString(m.year.View())
	b.WriteString("\n")
	b.WriteString(m.fieldLabel("Genre", focusGenre))
	genre := fmt.Sprintf(" ‹ %s ›", m.genreValue())
	if m.focus == focusGenre {
		genre = selectedStyle.Render(genre)
	}
	b.WriteString(genre)
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d movie(s)", len(m.movies))))
	b.WriteString("\n\n")

	return b.String()
}

func (m Model) viewPrompt() string {
	var b strings.Builder

	title := "Save collection"
	if m.prompt == promptLoad {
		title = "Load collection"
	}
	b.WriteString(subtitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString("Format: ")
	for i, f := range m.formats {
		label := " " + f.Title() + " "
		if i == m.formatIdx {
			label = selectedStyle.Render("[" + f.Title() + "]")
		}
		b.WriteString(label)
	}
	b.WriteString("\n")
	b.WriteString("Path:   ")
	b.WriteString(m.path.View())
	b.WriteString("\n\n")

	return b.String()
}

func (m Model) fieldLabel(label string, f focus) string {
	if m.focus == f {
		return selectedStyle.Render("› "+label) + " "
	}
	return dimStyle.Render("  "+label) + " "
}

func (m Model) renderHistory() string {
	var b strings.Builder

	for _, res := range m.history {
		var style lipgloss.Style
		prefix := "•"
		switch res.Level {
		case session.LevelError:
			style = errorStyle
			prefix = "✗"
		case session.LevelWarning:
			style = warningStyle
			prefix = "!"
		case session.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case session.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		line := prefix + " " + res.Message
		if res.Err != nil && res.Level == session.LevelError {
			line += dimStyle.Render(" (" + res.Err.Error() + ")")
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) shortHelp() []key.Binding {
	k := m.keys
	switch {
	case m.showHelp:
		return []key.Binding{k.Cancel}
	case m.busy:
		return []key.Binding{k.Quit}
	case m.state == StateWelcome:
		return []key.Binding{k.NewSession, k.Demo, k.Open, k.Help, k.Exit}
	case m.state == StatePrompt:
		return []key.Binding{k.Submit, k.Next, k.Cancel}
	case m.focus == focusTable:
		return []key.Binding{k.Edit, k.Delete, k.Next, k.Save, k.Load, k.Close, k.Help}
	case m.focus == focusGenre:
		return []key.Binding{k.Left, k.Right, k.Submit, k.Next, k.Save, k.Close}
	}
	return []key.Binding{k.Submit, k.Next, k.Save, k.Load, k.Close}
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger zerolog.Logger) error {
	registry := format.DefaultRegistry(settings.FormatOptions())
	sess := session.New(collection.New(), registry,
		session.WithLogger(logger),
		session.WithDataDir(settings.DataDir),
		session.WithDemoFile(settings.DemoFile),
	)

	p := tea.NewProgram(NewModel(sess, settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
