package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/goliath-arm/goliath/pkg/animation"
	"github.com/goliath-arm/goliath/pkg/export"
)

type PreviewCommand struct {
	Input string  `long:"input" short:"i" description:"Trajectory CSV to preview (default: generate the built-in sequence)"`
	Hz    float64 `long:"hz" default:"30" description:"Initial playback rate in frames per second"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 3 // status line box
	borderSize   = 2 // chart border
)

// Joint colors, one per axis. Sliders share the dim pair at the end.
var jointColors = map[animation.JointName]string{
	animation.Joint1:      "196", // red
	animation.Joint2:      "208", // orange
	animation.Joint3:      "226", // yellow
	animation.Joint4:      "46",  // green
	animation.Joint5:      "51",  // cyan
	animation.Joint6:      "201", // magenta
	animation.Joint7:      "105", // violet
	animation.SliderLeft:  "244", // gray
	animation.SliderRight: "250", // light gray
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type previewModel struct {
	table    *export.Table
	chart    *streamlinechart.Model
	row      int
	hz       float64
	paused   bool
	width    int
	height   int
	quitting bool
}

type frameTickMsg time.Time

func frameTick(hz float64) tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)/hz), func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func initialPreviewModel(table *export.Table, hz float64) previewModel {
	minY, maxY := tableRange(table)

	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(minY, maxY),
	)

	for _, col := range table.Columns {
		color, ok := jointColors[animation.JointName(col)]
		if !ok {
			color = "15"
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(col, runes.ThinLineStyle, style)
	}

	return previewModel{
		table: table,
		chart: &chart,
		hz:    hz,
	}
}

// tableRange finds the value range across all columns, padded a little so
// the extremes stay visible.
func tableRange(table *export.Table) (float64, float64) {
	min, max := 0.0, 0.0
	first := true
	for _, row := range table.Rows {
		for _, v := range row {
			if first {
				min, max = v, v
				first = false
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	pad := (max - min) * 0.05
	if pad == 0 {
		pad = 1
	}
	return min - pad, max + pad
}

func (m *previewModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *previewModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func (m previewModel) Init() tea.Cmd {
	return frameTick(m.hz)
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused {
				return m, frameTick(m.hz)
			}
			return m, nil
		case "up", "right":
			m.hz *= 1.5
			if m.hz > 240 {
				m.hz = 240
			}
			return m, nil
		case "down", "left":
			m.hz /= 1.5
			if m.hz < 1 {
				m.hz = 1
			}
			return m, nil
		}

	case frameTickMsg:
		if m.paused {
			return m, nil
		}
		for i, col := range m.table.Columns {
			m.chart.PushDataSet(col, m.table.Rows[m.row][i])
		}
		m.chart.DrawAll()
		m.row++
		if m.row >= len(m.table.Rows) {
			m.row = 0 // wrap for continuous preview
		}
		return m, frameTick(m.hz)
	}

	return m, nil
}

func (m previewModel) View() string {
	if m.quitting {
		return "Preview stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Goliath Preview"))
	sb.WriteString(fmt.Sprintf(" - frame %d/%d at %.0f fps", m.table.Frames[m.row], len(m.table.Rows), m.hz))
	if m.paused {
		sb.WriteString(statusStyle.Render("  [paused]"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	sb.WriteString(renderLegend(m.table.Columns))
	sb.WriteString("\n\n")

	sb.WriteString(statusStyle.Render("space pause  ↑/↓ speed  q quit"))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend(columns []string) string {
	var items []string
	for _, col := range columns {
		color, ok := jointColors[animation.JointName(col)]
		if !ok {
			color = "15"
		}
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+col)
	}
	return strings.Join(items, "  ")
}

func (c *PreviewCommand) Execute(args []string) error {
	var table *export.Table

	if c.Input != "" {
		t, err := export.ReadCSVFile(c.Input)
		if err != nil {
			return fmt.Errorf("read trajectory: %w", err)
		}
		table = t
	} else {
		tr := animation.New(animation.Config{}).Generate()
		table = trajectoryTable(tr)
	}

	if len(table.Rows) == 0 {
		return fmt.Errorf("trajectory is empty")
	}

	p := tea.NewProgram(initialPreviewModel(table, c.Hz), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run preview: %w", err)
	}

	return nil
}

// trajectoryTable converts an in-memory trajectory to the table form the
// preview and player consume.
func trajectoryTable(tr *animation.Trajectory) *export.Table {
	names := tr.Joints()
	columns := make([]string, len(names))
	for i, n := range names {
		columns[i] = string(n)
	}

	frames := make([]int, tr.Frames())
	rows := make([][]float64, tr.Frames())
	for f := 0; f < tr.Frames(); f++ {
		frames[f] = f
		row := make([]float64, len(names))
		for i, n := range names {
			row[i] = tr.Value(f, n)
		}
		rows[f] = row
	}

	return &export.Table{Columns: columns, Frames: frames, Rows: rows}
}
