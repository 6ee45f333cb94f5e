package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flighttree/pkg/dataset"
	"github.com/matzehuels/flighttree/pkg/pipeline"
)

func newTestBrowser(t *testing.T) BrowseModel {
	t.Helper()
	runner := pipeline.NewRunner(log.New(io.Discard), pipeline.DefaultLimits())
	ds := dataset.New([]string{"GA305", "GA010", "GA201", "GA100", "GA039"})
	m, err := NewBrowseModel(context.Background(), runner, ds, 5)
	if err != nil {
		t.Fatalf("NewBrowseModel() error: %v", err)
	}
	return m
}

func press(m BrowseModel, keys ...tea.KeyMsg) BrowseModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(BrowseModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestBrowseStartsWithStructure(t *testing.T) {
	m := newTestBrowser(t)
	if m.Action != pipeline.ActionStructure {
		t.Errorf("Action = %q", m.Action)
	}
	if strings.Join(m.Codes, ",") != "GA010,GA039,GA100,GA201,GA305" {
		t.Errorf("Codes = %v", m.Codes)
	}
	if !strings.Contains(m.View(), "Initial Tree Structure") {
		t.Errorf("View() missing title:\n%s", m.View())
	}
}

func TestBrowseSearchUnderCursor(t *testing.T) {
	m := press(newTestBrowser(t), keyDown, keyDown, keyDown, keyUp, keyEnter)

	if m.Cursor != 2 {
		t.Fatalf("Cursor = %d, want 2", m.Cursor)
	}
	if m.Action != pipeline.ActionSearch || !m.Result.Found {
		t.Fatalf("Action = %q, Result = %+v", m.Action, m.Result)
	}
	if strings.Join(m.Result.Path, ",") != "GA100" {
		t.Errorf("Path = %v", m.Result.Path)
	}

	m = press(m, keyDown, keyDown, keyEnter)
	if strings.Join(m.Result.Path, ",") != "GA100,GA305" {
		t.Errorf("Path = %v", m.Result.Path)
	}
	if !strings.Contains(m.View(), "found after visiting 2 nodes") {
		t.Errorf("View() missing message:\n%s", m.View())
	}
}

func TestBrowseCursorBounds(t *testing.T) {
	m := press(newTestBrowser(t), keyUp)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after up at top", m.Cursor)
	}
	for range 10 {
		m = press(m, keyDown)
	}
	if m.Cursor != 4 {
		t.Errorf("Cursor = %d after scrolling past the end", m.Cursor)
	}
}

func TestBrowseScrollsWithSmallWindow(t *testing.T) {
	m := newTestBrowser(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m = next.(BrowseModel)
	if m.Height != 5 {
		t.Fatalf("Height = %d, want 5", m.Height)
	}
	m.Height = 2
	m = press(m, keyDown, keyDown, keyDown)
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
}

func TestBrowseActions(t *testing.T) {
	m := press(newTestBrowser(t), runeKey('i'))
	if m.Action != pipeline.ActionInOrder || len(m.Result.Traversal) != 5 {
		t.Errorf("in-order: Action = %q, Traversal = %v", m.Action, m.Result.Traversal)
	}

	m = press(m, runeKey('t'))
	if m.Action != pipeline.ActionStructure || len(m.Result.Path) != 0 {
		t.Errorf("structure: Action = %q, Path = %v", m.Action, m.Result.Path)
	}
}

func TestBrowseQuit(t *testing.T) {
	_, cmd := newTestBrowser(t).Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func typeText(m BrowseModel, s string) BrowseModel {
	for _, r := range s {
		m = press(m, runeKey(r))
	}
	return m
}

func TestBrowseFindMissingCode(t *testing.T) {
	m := press(newTestBrowser(t), runeKey('/'))
	if !m.Typing {
		t.Fatal("/ should open the search prompt")
	}
	m = typeText(m, "GA99")
	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeText(m, "77")
	if m.Query != "GA977" {
		t.Fatalf("Query = %q", m.Query)
	}
	if !strings.Contains(m.View(), "Search: GA977") {
		t.Errorf("View() missing prompt:\n%s", m.View())
	}

	m = press(m, keyEnter)
	if m.Typing || m.Action != pipeline.ActionSearch {
		t.Fatalf("Typing = %v, Action = %q", m.Typing, m.Action)
	}
	if m.Result.Found || m.Cursor != 0 {
		t.Errorf("Found = %v, Cursor = %d", m.Result.Found, m.Cursor)
	}
	if !strings.Contains(m.View(), "Code 'GA977' not found") {
		t.Errorf("View() missing not-found message:\n%s", m.View())
	}
	if len(m.Result.Path) != 0 {
		t.Errorf("Path = %v, want none for a miss", m.Result.Path)
	}
}

func TestBrowseFindMovesCursor(t *testing.T) {
	m := press(newTestBrowser(t), runeKey('/'))
	m = typeText(m, "GA201")
	m = press(m, keyEnter)
	if !m.Result.Found || m.Cursor != 3 {
		t.Errorf("Found = %v, Cursor = %d, want found at 3", m.Result.Found, m.Cursor)
	}
}

func TestBrowsePromptCancel(t *testing.T) {
	m := press(newTestBrowser(t), runeKey('/'))
	m = typeText(m, "q")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(BrowseModel)
	if cmd != nil {
		t.Error("esc at the prompt should not quit")
	}
	if m.Typing || m.Action != pipeline.ActionStructure {
		t.Errorf("Typing = %v, Action = %q", m.Typing, m.Action)
	}

	m = press(m, runeKey('/'), keyEnter)
	if m.Typing || m.Action != pipeline.ActionStructure {
		t.Errorf("blank query should close the prompt without searching: Action = %q", m.Action)
	}
}
