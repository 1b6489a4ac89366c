package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/prism/pkg/chart"
)

func TestSuggestChart(t *testing.T) {
	tests := []struct {
		columns []string
		want    chart.ChartType
	}{
		{[]string{"label", "value"}, chart.Bar},
		{nil, chart.Bar},
		{[]string{"x", "y"}, chart.Bar},
		{[]string{"x", "y", "z"}, chart.Surface},
		{[]string{"X", "Y", "Z"}, chart.Surface},
		{[]string{"label", "size", "x", "y", "z"}, chart.Scatter},
		{[]string{"name", "x", "y", "z", "label"}, chart.Scatter},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.columns, ","), func(t *testing.T) {
			if got := suggestChart(tt.columns); got != tt.want {
				t.Errorf("suggestChart(%v) = %s, want %s", tt.columns, got, tt.want)
			}
		})
	}
}

func press(t *testing.T, m ChartListModel, key tea.KeyMsg) (ChartListModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	nm, ok := next.(ChartListModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestChartListModel(t *testing.T) {
	m := NewChartListModel([]string{"x", "y", "z"})
	if got := m.Types[m.Cursor]; got != chart.Surface {
		t.Fatalf("cursor starts on %s, want surface", got)
	}

	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m, _ = press(t, m, down)
	if m.Cursor != len(m.Types)-1 {
		t.Errorf("cursor should clamp at the last entry, got %d", m.Cursor)
	}
	m, _ = press(t, m, up)
	m, _ = press(t, m, up)
	if got := m.Types[m.Cursor]; got != chart.Scatter {
		t.Errorf("after two ups cursor is on %s, want scatter", got)
	}

	m, cmd := press(t, m, enter)
	if cmd == nil {
		t.Error("enter should quit")
	}
	if m.Selected == nil || *m.Selected != chart.Scatter {
		t.Errorf("Selected = %v, want scatter", m.Selected)
	}
}

func TestChartListModelQuit(t *testing.T) {
	m := NewChartListModel(nil)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
	if m.Selected != nil {
		t.Error("quitting should not select")
	}
}

func TestChartListModelView(t *testing.T) {
	view := NewChartListModel([]string{"label", "value"}).View()
	for _, ct := range chart.Types() {
		if !strings.Contains(view, string(ct)) {
			t.Errorf("view missing %s", ct)
		}
	}
}
