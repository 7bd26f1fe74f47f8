// Package player streams generated trajectories to an arm at a fixed rate.
package player

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/goliath-arm/goliath/pkg/animation"
	"github.com/goliath-arm/goliath/pkg/export"
)

// Sink receives one pose per playback step. robot.Arm satisfies this; tests
// and dry runs use lighter implementations.
type Sink interface {
	WritePositions(ctx context.Context, positions animation.Pose) error
}

// State represents the playback position after a step.
type State struct {
	Row       int
	Frame     int
	Positions animation.Pose
	Timestamp time.Time
	Error     error
}

// Config holds configuration for the player.
type Config struct {
	Hz          float64           // rows per second, default 2.0
	Loop        bool              // restart from the first row after the last
	Radians     bool              // convert rotational axes from degrees to radians
	JointPrefix string            // prepended to joint names before column lookup
	Columns     map[string]string // joint name -> table column override
}

// Player manages the playback loop.
type Player struct {
	table *export.Table
	sink  Sink
	reg   *animation.Registry
	cfg   Config

	// columns[i] is the table column index for joint i, or -1 if the
	// trajectory does not carry that joint.
	columns []int

	mu      sync.RWMutex
	running bool
	stateCh chan State
	logCh   chan string
}

// New creates a player for the given trajectory table and sink.
func New(table *export.Table, sink Sink, cfg Config) (*Player, error) {
	return NewWithRegistry(table, sink, animation.DefaultRegistry(), cfg)
}

// NewWithRegistry creates a player using a custom joint registry.
func NewWithRegistry(table *export.Table, sink Sink, reg *animation.Registry, cfg Config) (*Player, error) {
	if len(table.Frames) == 0 {
		return nil, fmt.Errorf("empty trajectory")
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 2.0
	}

	p := &Player{
		table:   table,
		sink:    sink,
		reg:     reg,
		cfg:     cfg,
		stateCh: make(chan State, 1),
		logCh:   make(chan string, 10),
	}

	if err := p.resolveColumns(); err != nil {
		return nil, err
	}

	return p, nil
}

// resolveColumns maps each registry joint to a table column, honoring
// explicit overrides and the joint prefix.
func (p *Player) resolveColumns() error {
	index := make(map[string]int, len(p.table.Columns))
	for i, col := range p.table.Columns {
		index[col] = i
	}

	names := p.reg.Names()
	p.columns = make([]int, len(names))
	found := 0
	for i, name := range names {
		column := p.cfg.JointPrefix + string(name)
		if override, ok := p.cfg.Columns[string(name)]; ok {
			column = override
		}
		if idx, ok := index[column]; ok {
			p.columns[i] = idx
			found++
		} else {
			p.columns[i] = -1
		}
	}

	if found == 0 {
		return fmt.Errorf("no trajectory column matches any joint")
	}
	return nil
}

// States returns a channel that receives state updates.
func (p *Player) States() <-chan State {
	return p.stateCh
}

// Logs returns a channel that receives log messages.
func (p *Player) Logs() <-chan string {
	return p.logCh
}

// Hz returns the playback rate.
func (p *Player) Hz() float64 {
	return p.cfg.Hz
}

// Rows returns the number of trajectory rows.
func (p *Player) Rows() int {
	return len(p.table.Frames)
}

func (p *Player) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case p.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Start runs the playback loop. It returns nil when the trajectory is
// exhausted (without Loop), or the context error on cancellation.
func (p *Player) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("already running")
	}
	p.running = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	p.log("Playback started: %d rows at %.1f Hz", len(p.table.Frames), p.cfg.Hz)
	if p.cfg.Loop {
		p.log("Loop mode enabled")
	}

	interval := time.Duration(float64(time.Second) / p.cfg.Hz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	row := 0
	for {
		select {
		case <-ctx.Done():
			p.log("Playback stopped")
			return ctx.Err()
		case <-ticker.C:
			p.step(ctx, row)
			row++
			if row >= len(p.table.Frames) {
				if !p.cfg.Loop {
					p.log("Playback finished")
					return nil
				}
				row = 0
			}
		}
	}
}

func (p *Player) step(ctx context.Context, row int) {
	positions := p.pose(row)

	if err := p.sink.WritePositions(ctx, positions); err != nil {
		p.log("Write error: %v", err)
		p.sendState(State{Row: row, Frame: p.table.Frames[row], Error: err, Timestamp: time.Now()})
		return
	}

	p.sendState(State{
		Row:       row,
		Frame:     p.table.Frames[row],
		Positions: positions,
		Timestamp: time.Now(),
	})
}

// pose builds the pose for one trajectory row, converting rotational axes
// to radians when configured.
func (p *Player) pose(row int) animation.Pose {
	values := p.table.Rows[row]
	names := p.reg.Names()

	pose := make(animation.Pose, len(names))
	for i, name := range names {
		idx := p.columns[i]
		if idx < 0 {
			continue
		}
		v := values[idx]
		if p.cfg.Radians {
			if j, ok := p.reg.Get(name); ok && j.Kind == animation.Rotational {
				v = v * math.Pi / 180
			}
		}
		pose[name] = v
	}
	return pose
}

func (p *Player) sendState(s State) {
	select {
	case p.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-p.stateCh:
		default:
		}
		p.stateCh <- s
	}
}
