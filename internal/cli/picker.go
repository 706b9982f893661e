package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pkessler/flowgrid/pkg/flow"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FlowListModel - Interactive flow-file selection
// =============================================================================

// flowEntry is one selectable flow file with a peek at its contents.
type flowEntry struct {
	Path  string
	Nodes int
	Edges int
	Bad   bool // file exists but does not parse as a flow graph
}

// FlowListModel is the bubbletea model for interactive flow-file selection.
type FlowListModel struct {
	Entries  []flowEntry
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewFlowListModel creates a new flow list model.
func NewFlowListModel(entries []flowEntry) FlowListModel {
	return FlowListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m FlowListModel) Init() tea.Cmd {
	return nil
}

func (m FlowListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			entry := m.Entries[m.Cursor]
			if entry.Bad {
				return m, nil
			}
			m.Selected = entry.Path
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FlowListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Flow"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		detail := fmt.Sprintf("%d nodes, %d edges", e.Nodes, e.Edges)
		if e.Bad {
			style = listDimStyle
			detail = "not a flow file"
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(filepath.Base(e.Path)))
		b.WriteString("  ")
		b.WriteString(listDimStyle.Render(detail))
		b.WriteString("\n")
	}

	return b.String()
}

// =============================================================================
// Entry point
// =============================================================================

// pickFlowFile lists the JSON files in dir and prompts for a selection.
// A single candidate is returned without prompting.
func pickFlowFile(dir string) (string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return "", err
	}
	sort.Strings(paths)

	var entries []flowEntry
	for _, p := range paths {
		if strings.HasSuffix(p, ".layout.json") {
			continue
		}
		e := flowEntry{Path: p}
		if g, err := flow.ReadGraphFile(p); err != nil {
			e.Bad = true
		} else {
			e.Nodes = g.NodeCount()
			e.Edges = g.EdgeCount()
		}
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return "", fmt.Errorf("no flow files found in %s", dir)
	}
	if len(entries) == 1 && !entries[0].Bad {
		return entries[0].Path, nil
	}

	model, err := tea.NewProgram(NewFlowListModel(entries)).Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}

	final, ok := model.(FlowListModel)
	if !ok || final.Selected == "" {
		return "", fmt.Errorf("no flow selected")
	}
	return final.Selected, nil
}
