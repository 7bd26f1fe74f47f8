package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliath-arm/goliath/pkg/animation"
	"github.com/goliath-arm/goliath/pkg/export"
	"github.com/goliath-arm/goliath/pkg/player"
	"github.com/goliath-arm/goliath/pkg/robot"
)

type PlayCommand struct {
	Input   string   `long:"input" short:"i" required:"true" description:"Trajectory CSV to play"`
	Hz      *float64 `long:"hz" description:"Playback rate in rows per second (default from config, else 2.0)"`
	Loop    bool     `long:"loop" description:"Restart from the first row when the trajectory ends"`
	Radians bool     `long:"radians" description:"Convert rotational axes from degrees to radians"`
	DryRun  bool     `long:"dry-run" short:"n" description:"Print poses instead of driving the arm"`
}

// loggingSink prints each pose instead of writing to hardware.
type loggingSink struct{}

func (loggingSink) WritePositions(_ context.Context, positions animation.Pose) error {
	for _, name := range animation.DefaultRegistry().Names() {
		if v, ok := positions[name]; ok {
			fmt.Printf("  %-10s %9.4f", name, v)
		}
	}
	fmt.Println()
	return nil
}

func (c *PlayCommand) Execute(args []string) error {
	table, err := export.ReadCSVFile(c.Input)
	if err != nil {
		return fmt.Errorf("read trajectory: %w", err)
	}

	pcfg := player.Config{Loop: c.Loop, Radians: c.Radians}

	var sink player.Sink
	if c.DryRun {
		sink = loggingSink{}
	} else {
		cfg, err := robot.LoadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, "No configuration found. Run 'goliath setup' first.")
			os.Exit(1)
		}
		if cfg.Arm.Port == "" || !cfg.Arm.IsCalibrated() {
			fmt.Fprintln(os.Stderr, "Arm not calibrated. Run 'goliath setup' first.")
			os.Exit(1)
		}

		pcfg.Hz = cfg.Playback.Hz
		pcfg.Loop = pcfg.Loop || cfg.Playback.Loop
		pcfg.JointPrefix = cfg.Playback.JointPrefix
		pcfg.Columns = cfg.Playback.Columns

		arm, err := robot.NewArm(cfg.Arm.Port, cfg.Arm.Calibration)
		if err != nil {
			return fmt.Errorf("connect arm: %w", err)
		}
		defer arm.Close()

		ctx := context.Background()
		if err := arm.Enable(ctx); err != nil {
			return fmt.Errorf("enable arm: %w", err)
		}
		defer arm.Disable(context.Background())

		sink = arm
	}

	if c.Hz != nil {
		pcfg.Hz = *c.Hz
	}

	p, err := player.New(table, sink, pcfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		for msg := range p.Logs() {
			fmt.Println(msg)
		}
	}()

	if !c.DryRun {
		go func() {
			for s := range p.States() {
				if s.Error != nil {
					continue
				}
				fmt.Printf("\rrow %d/%d (frame %d)   ", s.Row+1, p.Rows(), s.Frame)
			}
		}()
	}

	err = p.Start(ctx)
	fmt.Println()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
