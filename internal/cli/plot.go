package cli

import (
	"context"
	stderrors "errors"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pepystats/pkg/downloads"
	"github.com/matzehuels/pepystats/pkg/render/chart"
)

// plotChrome is the number of lines taken by the title, legend, caption and help.
const plotChrome = 7

// =============================================================================
// PlotModel - Interactive chart view
// =============================================================================

// PlotModel is the bubbletea model for the --plot view.
type PlotModel struct {
	Title  string
	Rows   downloads.Rows
	Width  int
	Height int
}

// NewPlotModel creates a plot model sized for an 80x24 terminal until the
// first window size message arrives.
func NewPlotModel(title string, rows downloads.Rows) PlotModel {
	return PlotModel{Title: title, Rows: rows, Width: 80, Height: 24}
}

func (m PlotModel) Init() tea.Cmd {
	return nil
}

func (m PlotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	}
	return m, nil
}

func (m PlotModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Title + " downloads"))
	b.WriteString("\n\n")
	b.WriteString(chart.Render(m.Rows, chart.Options{
		Width:  m.Width,
		Height: m.Height - plotChrome,
		Color:  true,
	}))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("  q/esc quit"))
	return b.String()
}

// runPlot shows the chart until the user quits or ctx is cancelled.
func runPlot(ctx context.Context, in io.Reader, out io.Writer, title string, rows downloads.Rows) error {
	p := tea.NewProgram(NewPlotModel(title, rows),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
