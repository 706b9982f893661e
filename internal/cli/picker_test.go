package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{}
}

func testEntries() []flowEntry {
	return []flowEntry{
		{Path: "a.json", Nodes: 3, Edges: 2},
		{Path: "b.json", Nodes: 5, Edges: 6},
		{Path: "broken.json", Bad: true},
	}
}

func TestFlowListNavigation(t *testing.T) {
	m := NewFlowListModel(testEntries())

	next, _ := m.Update(keyMsg("down"))
	m = next.(FlowListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(FlowListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(keyMsg("up"))
	m = next.(FlowListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 after up at top", m.Cursor)
	}
}

func TestFlowListSelect(t *testing.T) {
	m := NewFlowListModel(testEntries())

	next, _ := m.Update(keyMsg("down"))
	m = next.(FlowListModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(FlowListModel)

	if m.Selected != "b.json" {
		t.Errorf("Selected = %q, want %q", m.Selected, "b.json")
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestFlowListSelectBadEntryIgnored(t *testing.T) {
	m := NewFlowListModel(testEntries())
	m.Cursor = 2 // broken.json

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(FlowListModel)

	if m.Selected != "" {
		t.Errorf("Selected = %q, want empty for unparseable entry", m.Selected)
	}
	if cmd != nil {
		t.Error("selecting a bad entry should not quit")
	}
}

func TestFlowListView(t *testing.T) {
	m := NewFlowListModel(testEntries())
	view := m.View()

	for _, want := range []string{"Select Flow", "a.json", "3 nodes, 2 edges", "not a flow file"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
