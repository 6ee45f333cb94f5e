package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flighttree/pkg/dataset"
	"github.com/matzehuels/flighttree/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle        = lipgloss.NewStyle().PaddingLeft(4)
)

// browseCommand starts the interactive code browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		source sourceOpts
		count  int
	)
	cmd := &cobra.Command{
		Use:     "browse",
		Short:   "Browse flight codes and watch their search paths",
		Args:    cobra.NoArgs,
		PreRunE: positiveCount,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ds, name, err := c.loadDataset(ctx, source)
			if err != nil {
				return err
			}
			runner := c.newRunner()
			runner.Text = lipgloss.DefaultRenderer()

			m, err := NewBrowseModel(ctx, runner, ds, count)
			if err != nil {
				return err
			}
			m.Source = name
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
	source.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of codes to build the tree from (default from config)")
	return cmd
}

// =============================================================================
// BrowseModel - Interactive code browser
// =============================================================================

// BrowseModel is the bubbletea model for the code browser. The left column
// lists the codes of the tree; the right column shows the tree with the
// current action highlighted. Pressing / opens a prompt for searching any
// code, including ones that are not in the tree.
type BrowseModel struct {
	Source string
	Codes  []string
	Cursor int
	Height int
	Offset int

	// Query is the text typed at the search prompt; Typing is set while
	// the prompt is open.
	Query  string
	Typing bool

	// Action is the action shown on the right.
	Action string
	Result *pipeline.Result
	Err    error

	ctx    context.Context
	runner *pipeline.Runner
	ds     *dataset.Dataset
	count  int
}

// NewBrowseModel creates a browser over the first count codes of ds and
// shows the plain structure.
func NewBrowseModel(ctx context.Context, runner *pipeline.Runner, ds *dataset.Dataset, count int) (BrowseModel, error) {
	m := BrowseModel{
		Height: 15,
		ctx:    ctx,
		runner: runner,
		ds:     ds,
		count:  count,
	}
	m = m.run(pipeline.ActionStructure, "")
	if m.Err != nil {
		return m, m.Err
	}
	m.Codes = m.Result.Codes
	return m, nil
}

// run executes action and stores its outcome. query is only used by
// search.
func (m BrowseModel) run(action, query string) BrowseModel {
	m.Action = action
	m.Result, m.Err = m.runner.Execute(m.ctx, m.ds, pipeline.Request{
		Action:  action,
		Count:   m.count,
		Query:   query,
		Formats: []string{pipeline.FormatText},
	})
	return m
}

// search looks up query and moves the cursor to it when it is in the list.
func (m BrowseModel) search(query string) BrowseModel {
	m = m.run(pipeline.ActionSearch, query)
	if m.Err != nil || !m.Result.Found {
		return m
	}
	if i := slices.Index(m.Codes, m.Result.Path[len(m.Result.Path)-1]); i >= 0 {
		m.Cursor = i
		if m.Cursor < m.Offset {
			m.Offset = m.Cursor
		} else if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m
}

// updatePrompt handles keys while the search prompt is open.
func (m BrowseModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.Typing = false
	case tea.KeyEnter:
		m.Typing = false
		if q := strings.TrimSpace(m.Query); q != "" {
			m = m.search(q)
		}
	case tea.KeyBackspace:
		if r := []rune(m.Query); len(r) > 0 {
			m.Query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Query += " "
	case tea.KeyRunes:
		m.Query += string(msg.Runes)
	}
	return m, nil
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Typing {
			return m.updatePrompt(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "/":
			m.Typing = true
			m.Query = ""
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Codes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			if len(m.Codes) > 0 {
				m = m.search(m.Codes[m.Cursor])
			}
		case "i":
			m = m.run(pipeline.ActionInOrder, "")
		case "t":
			m = m.run(pipeline.ActionStructure, "")
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	title := "Flight Codes"
	if m.Source != "" {
		title += " · " + m.Source
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	if m.Typing {
		b.WriteString(StyleHighlight.Render("Search: ") + m.Query + listSelectedStyle.Render("▏"))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("⏎ search  esc cancel"))
	} else {
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ search  / find code  i in-order  t tree  q quit"))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), panelStyle.Render(m.resultView())))
	b.WriteString("\n")
	return b.String()
}

func (m BrowseModel) listView() string {
	var b strings.Builder
	end := min(m.Offset+m.Height, len(m.Codes))
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + m.Codes[i]))
		} else {
			b.WriteString(listNormalStyle.Render("  " + m.Codes[i]))
		}
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Codes))))
	return b.String()
}

func (m BrowseModel) resultView() string {
	if m.Err != nil {
		return styleIconError.Render(iconError) + " " + m.Err.Error()
	}
	if m.Result == nil {
		return ""
	}

	var b strings.Builder
	b.Write(m.Result.Artifacts[pipeline.FormatText])
	b.WriteString("\n")
	switch {
	case m.Action == pipeline.ActionSearch && m.Result.Found:
		b.WriteString(StyleSuccess.Render(m.Result.Message))
		b.WriteString("\n")
		b.WriteString(formatPath(m.Result.Path))
	case m.Action == pipeline.ActionSearch:
		b.WriteString(StyleWarning.Render(m.Result.Message))
	case m.Action == pipeline.ActionInOrder:
		b.WriteString(formatPath(m.Result.Traversal))
	default:
		b.WriteString(StyleDim.Render(m.Result.Message))
	}
	return b.String()
}
