package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/prism/pkg/chart"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorViolet)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listMatchStyle    = lipgloss.NewStyle().Foreground(colorGreen)
)

// errNoSelection is returned when the user quits a picker without choosing.
var errNoSelection = errors.New("no chart type selected")

// =============================================================================
// ChartListModel - Interactive chart type selection
// =============================================================================

// ChartListModel is the bubbletea model for picking a chart type. It shows
// which of each chart's fields the input provides and starts on the best
// match.
type ChartListModel struct {
	Types    []chart.ChartType
	Columns  []string
	Cursor   int
	Selected *chart.ChartType
}

// NewChartListModel creates a picker for input with the given columns.
func NewChartListModel(columns []string) ChartListModel {
	types := chart.Types()
	return ChartListModel{
		Types:   types,
		Columns: columns,
		Cursor:  max(slices.Index(types, suggestChart(columns)), 0),
	}
}

func (m ChartListModel) Init() tea.Cmd {
	return nil
}

func (m ChartListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Types)-1 {
				m.Cursor++
			}
		case "enter":
			t := m.Types[m.Cursor]
			m.Selected = &t
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ChartListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Chart Type"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, t := range m.Types {
		cursor, style := "  ", listNormalStyle
		if i == m.Cursor {
			cursor, style = "▸ ", listSelectedStyle
		}
		b.WriteString(cursor + style.Render(fmt.Sprintf("%-8s", t)) + " " + listDimStyle.Render(t.Description()))
		b.WriteString("\n    ")
		for _, f := range t.Fields() {
			if hasColumn(m.Columns, f) {
				b.WriteString(listMatchStyle.Render(f) + " ")
			} else {
				b.WriteString(listDimStyle.Render(f) + " ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pickChart runs the interactive picker.
func pickChart(columns []string) (chart.ChartType, error) {
	p := tea.NewProgram(NewChartListModel(columns), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	fm, ok := final.(ChartListModel)
	if !ok || fm.Selected == nil {
		return "", errNoSelection
	}
	return *fm.Selected, nil
}

// suggestChart guesses the chart type from the input columns. Coordinates
// with a size or label suggest scatter, bare coordinates a surface, and
// anything else bar.
func suggestChart(columns []string) chart.ChartType {
	if hasColumn(columns, "x") && hasColumn(columns, "y") && hasColumn(columns, "z") {
		if hasColumn(columns, "size") || hasColumn(columns, "label") {
			return chart.Scatter
		}
		return chart.Surface
	}
	return chart.Bar
}

func hasColumn(columns []string, name string) bool {
	return slices.ContainsFunc(columns, func(c string) bool { return strings.EqualFold(c, name) })
}

// interactive reports whether stdin and stdout are terminals.
func interactive() bool {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		fi, err := f.Stat()
		if err != nil || fi.Mode()&os.ModeCharDevice == 0 {
			return false
		}
	}
	return true
}
