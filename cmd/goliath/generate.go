package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/goliath-arm/goliath/pkg/animation"
	"github.com/goliath-arm/goliath/pkg/export"
	"github.com/goliath-arm/goliath/pkg/rig"
	"github.com/goliath-arm/goliath/pkg/scenario"
)

type GenerateCommand struct {
	Scenario string   `long:"scenario" short:"s" description:"Scenario YAML file (default: built-in pick-and-place sequence)"`
	Rig      string   `long:"rig" description:"Euler-angle rig export JSON to import keyframes from"`
	Stride   int      `long:"stride" default:"20" description:"Keyframe stride when importing a rig export"`
	Frames   int      `long:"frames" default:"400" description:"Total number of frames"`
	Osc      *float64 `long:"osc" description:"Global oscillation factor override"`
	CSV      string   `long:"csv" default:"goliath_animation.csv" description:"Trajectory CSV output path (empty to skip)"`
	JSON     string   `long:"json" description:"Trajectory JSON output path (empty to skip)"`
	Quiet    bool     `long:"quiet" short:"q" description:"Suppress the range summary"`
}

func (c *GenerateCommand) Execute(args []string) error {
	cfg := animation.Config{
		TotalFrames: c.Frames,
		Logf: func(format string, a ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		},
	}

	anim, err := c.buildAnimator(cfg)
	if err != nil {
		return err
	}

	if c.Osc != nil {
		anim.SetGlobalOscFactor(*c.Osc)
	}

	tr := anim.Generate()

	if c.CSV != "" {
		if err := export.WriteCSVFile(c.CSV, tr); err != nil {
			return fmt.Errorf("write CSV: %w", err)
		}
		fmt.Printf("Wrote %d frames to %s\n", tr.Frames(), c.CSV)
	}
	if c.JSON != "" {
		if err := export.WriteJSONFile(c.JSON, tr); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		fmt.Printf("Wrote %d frames to %s\n", tr.Frames(), c.JSON)
	}

	if !c.Quiet {
		printRangeSummary(tr)
	}

	return nil
}

func (c *GenerateCommand) buildAnimator(cfg animation.Config) (*animation.Animator, error) {
	if c.Scenario != "" {
		s, err := scenario.Read(c.Scenario)
		if err != nil {
			return nil, fmt.Errorf("read scenario: %w", err)
		}
		anim, err := s.Animator(cfg)
		if err != nil {
			return nil, fmt.Errorf("apply scenario: %w", err)
		}
		return anim, nil
	}

	anim := animation.New(cfg)

	if c.Rig != "" {
		exp, err := rig.Load(c.Rig)
		if err != nil {
			return nil, fmt.Errorf("load rig export: %w", err)
		}
		records := exp.Records(rig.DefaultMapping(), c.Stride, func(format string, a ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		})
		if err := rig.Apply(anim, records); err != nil {
			return nil, fmt.Errorf("apply rig keyframes: %w", err)
		}
	}

	return anim, nil
}

// printRangeSummary prints the min/max swing of every joint over the
// trajectory, the quickest way to spot a runaway oscillation setting.
func printRangeSummary(tr *animation.Trajectory) {
	tableHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	jointStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(tr.Joints()))
	for _, name := range tr.Joints() {
		col := tr.Column(name)
		min, max := col[0], col[0]
		for _, v := range col {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		rows = append(rows, []string{
			string(name),
			fmt.Sprintf("%.4f", min),
			fmt.Sprintf("%.4f", max),
			fmt.Sprintf("%.4f", max-min),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Joint", "Min", "Max", "Swing").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 0 {
				return jointStyle
			}
			return cellStyle
		})

	fmt.Println()
	fmt.Println(t.Render())
}
