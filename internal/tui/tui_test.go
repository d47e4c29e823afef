package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/movieshelf/internal/collection"
	"github.com/handiism/movieshelf/internal/config"
	"github.com/handiism/movieshelf/internal/format"
	"github.com/handiism/movieshelf/internal/model"
	"github.com/handiism/movieshelf/internal/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	settings := config.DefaultSettings()
	settings.DataDir = t.TempDir()
	sess := session.New(collection.New(), format.DefaultRegistry(settings.FormatOptions()),
		session.WithDataDir(settings.DataDir))
	return NewModel(sess, settings)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// resolve executes cmd, feeding any resultMsg it produces back into m.
func resolve(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)

	var results []resultMsg
	var collect func(tea.Msg)
	collect = func(msg tea.Msg) {
		switch msg := msg.(type) {
		case resultMsg:
			results = append(results, msg)
		case tea.BatchMsg:
			for _, c := range msg {
				if c != nil {
					collect(c())
				}
			}
		}
	}
	collect(cmd())
	require.Len(t, results, 1)

	next, _ := m.Update(results[0])
	return next.(Model)
}

func lastMessage(m Model) string {
	if len(m.history) == 0 {
		return ""
	}
	return m.history[len(m.history)-1].Message
}

func TestWelcome_NewSession(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, StateWelcome, m.state)

	m, _ = press(t, m, runes("n"))
	assert.Equal(t, StateSession, m.state)
	assert.Equal(t, focusName, m.focus)
	assert.True(t, m.session.Active())
}

func TestWelcome_Quit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSession_AddMovie(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("n"))

	m.name.SetValue("Inception")
	m.year.SetValue("2010")
	m, _ = press(t, m, keyOf(tea.KeyTab), keyOf(tea.KeyTab))
	require.Equal(t, focusGenre, m.focus)

	for m.genreValue() != model.GenreSciFi.String() {
		m, _ = press(t, m, keyOf(tea.KeyRight))
	}
	m, _ = press(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, "Movie added: Inception", lastMessage(m))
	assert.Len(t, m.movies, 1)
	assert.Len(t, m.table.Rows(), 1)
	assert.Empty(t, m.name.Value(), "form is cleared after adding")
	assert.Equal(t, model.GenrePlaceholder, m.genreValue())
	assert.Equal(t, focusName, m.focus)
}

func TestSession_AddInvalidKeepsForm(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("n"))

	m.name.SetValue("Heat")
	m.year.SetValue("1995")
	m, _ = press(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, "Please select a valid genre!", lastMessage(m))
	assert.Empty(t, m.movies)
	assert.Equal(t, "Heat", m.name.Value())
}

func TestSession_GenreCycleWraps(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("n"), keyOf(tea.KeyShiftTab), keyOf(tea.KeyShiftTab))
	require.Equal(t, focusGenre, m.focus)

	m, _ = press(t, m, keyOf(tea.KeyLeft))
	assert.Equal(t, model.GenreWestern.String(), m.genreValue())
	m, _ = press(t, m, keyOf(tea.KeyRight))
	assert.Equal(t, model.GenrePlaceholder, m.genreValue())
	m, _ = press(t, m, keyOf(tea.KeyRight))
	assert.Equal(t, model.GenreAction.String(), m.genreValue())
}

func TestSession_EditAndDelete(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("n"))
	m.session.OnAdd("Heat", "1995", "Crime")
	m.refreshTable()

	m, _ = press(t, m, keyOf(tea.KeyShiftTab))
	require.Equal(t, focusTable, m.focus)

	m, _ = press(t, m, runes("e"))
	require.NotNil(t, m.editing)
	assert.Equal(t, "Heat", m.name.Value())
	assert.Equal(t, "1995", m.year.Value())
	assert.Equal(t, "Crime", m.genreValue())

	m.year.SetValue("1996")
	m, _ = press(t, m, keyOf(tea.KeyEnter))
	assert.Equal(t, "Movie updated: Heat", lastMessage(m))
	require.Len(t, m.movies, 1)
	assert.Equal(t, 1996, m.movies[0].ReleaseYear)
	assert.Nil(t, m.editing)

	m, _ = press(t, m, keyOf(tea.KeyShiftTab), runes("d"))
	assert.Equal(t, "Heat has been deleted.", lastMessage(m))
	assert.Empty(t, m.movies)
	assert.Empty(t, m.table.Rows())
}

func TestSession_SaveEmptyCollection(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("n"), keyOf(tea.KeyCtrlS))

	assert.Equal(t, StateSession, m.state)
	assert.Equal(t, "No movies to save!", lastMessage(m))
}

func TestSession_SaveAndLoadThroughPrompt(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("n"))
	m.session.OnAdd("Inception", "2010", "Sci-Fi")
	m.refreshTable()

	m, _ = press(t, m, keyOf(tea.KeyCtrlS))
	require.Equal(t, StatePrompt, m.state)
	assert.Equal(t, filepath.Join(m.settings.DataDir, "movies.csv"), m.path.Value())

	m, _ = press(t, m, keyOf(tea.KeyTab))
	assert.Equal(t, format.FormatBinary, m.currentFormat())
	assert.Equal(t, filepath.Join(m.settings.DataDir, "movies.bin"), m.path.Value())

	m, cmd := press(t, m, keyOf(tea.KeyEnter))
	assert.True(t, m.busy)
	m = resolve(t, m, cmd)
	assert.False(t, m.busy)
	assert.Equal(t, StateSession, m.state)
	assert.Equal(t, "Movie data saved as Binary!", lastMessage(m))
	assert.FileExists(t, filepath.Join(m.settings.DataDir, "movies.bin"))

	m, _ = press(t, m, keyOf(tea.KeyCtrlW))
	require.Equal(t, StateWelcome, m.state)
	assert.Empty(t, m.movies)

	m, _ = press(t, m, runes("l"))
	require.Equal(t, StatePrompt, m.state)
	assert.Equal(t, format.FormatBinary, m.currentFormat(), "the prompt remembers the last format")
	m, cmd = press(t, m, keyOf(tea.KeyEnter))
	m = resolve(t, m, cmd)

	assert.Equal(t, StateSession, m.state)
	assert.Equal(t, "Movie set loaded from Binary", lastMessage(m))
	assert.Len(t, m.movies, 1)
}

func TestPrompt_LoadFailureStaysOnPrompt(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("l"))
	m.path.SetValue(filepath.Join(t.TempDir(), "missing.csv"))

	m, cmd := press(t, m, keyOf(tea.KeyEnter))
	m = resolve(t, m, cmd)

	assert.Equal(t, StatePrompt, m.state)
	assert.Equal(t, "Error occurred while loading movie set from CSV file!", lastMessage(m))

	m, _ = press(t, m, keyOf(tea.KeyEsc))
	assert.Equal(t, StateWelcome, m.state)
}

func TestPrompt_EmptyPath(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("l"))
	m.path.SetValue("   ")

	m, cmd := press(t, m, keyOf(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
	assert.Equal(t, "Please enter a file path!", lastMessage(m))
}

func TestWelcome_Demo(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(t, m, runes("o"))
	require.True(t, m.busy)

	// Keys are ignored while the demo loads.
	m, _ = press(t, m, runes("n"))
	assert.Equal(t, StateWelcome, m.state)

	m = resolve(t, m, cmd)
	assert.Equal(t, StateSession, m.state)
	assert.Equal(t, "Movie set loaded from CSV", lastMessage(m))
	assert.Len(t, m.movies, 18)
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, runes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "About")

	m, _ = press(t, m, runes("n"))
	assert.Equal(t, StateWelcome, m.state, "keys other than close are swallowed")

	m, _ = press(t, m, keyOf(tea.KeyEsc))
	assert.False(t, m.showHelp)

	// "?" is text while typing a name; f1 always opens help.
	m, _ = press(t, m, runes("n"), runes("?"))
	assert.False(t, m.showHelp)
	assert.Equal(t, "?", m.name.Value())

	m, _ = press(t, m, keyOf(tea.KeyF1))
	assert.True(t, m.showHelp)
}

func TestView_Renders(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "Start a new session")

	m, _ = press(t, m, runes("n"))
	m.session.OnAdd("Inception", "2010", "Sci-Fi")
	m.refreshTable()

	view := m.View()
	assert.Contains(t, view, "Inception")
	assert.Contains(t, view, "1 movie(s)")
}
