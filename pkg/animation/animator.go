package animation

import "fmt"

// Defaults for the tunable generation constants.
const (
	DefaultTotalFrames     = 400
	DefaultPrecisionRadius = 10    // frames
	DefaultSliderStillness = 0.001 // native slider units
)

// Config holds the per-run generation parameters. Zero values take the
// documented defaults, so the precision zone cannot be disabled by accident.
type Config struct {
	// TotalFrames is the length of the run; default 400.
	TotalFrames int

	// PrecisionRadius is the half-width in frames of the oscillation-free
	// zone around every keyframe; default 10.
	PrecisionRadius int

	// SliderStillness is the segment movement magnitude below which a slider
	// joint is considered stationary and gets no oscillation; default 0.001.
	SliderStillness float64

	// Logf receives human-readable progress and warning lines. Nil discards.
	Logf func(format string, args ...any)
}

// Animator turns a sparse keyframe set into a dense organic trajectory. One
// instance drives one generation pass: configure it, add keyframes, call
// Generate. Instances are not safe for concurrent use; treat each as
// single-owner for the duration of a Generate call.
type Animator struct {
	cfg       Config
	reg       *Registry
	keys      *Keyframes
	globalOsc float64
}

// New creates an animator over the default Goliath registry.
func New(cfg Config) *Animator {
	return NewWithRegistry(cfg, DefaultRegistry())
}

// NewWithRegistry creates an animator over a caller-supplied registry. The
// registry is owned by the animator from here on; setters mutate it.
func NewWithRegistry(cfg Config, reg *Registry) *Animator {
	if cfg.TotalFrames <= 0 {
		cfg.TotalFrames = DefaultTotalFrames
	}
	if cfg.PrecisionRadius <= 0 {
		cfg.PrecisionRadius = DefaultPrecisionRadius
	}
	if cfg.SliderStillness <= 0 {
		cfg.SliderStillness = DefaultSliderStillness
	}
	return &Animator{
		cfg:       cfg,
		reg:       reg,
		keys:      NewKeyframes(cfg.TotalFrames),
		globalOsc: 1.0,
	}
}

// Registry exposes the animator's joint registry, read-only by convention.
func (a *Animator) Registry() *Registry {
	return a.reg
}

func (a *Animator) logf(format string, args ...any) {
	if a.cfg.Logf != nil {
		a.cfg.Logf(format, args...)
	}
}

// SetGlobalOscFactor sets the global oscillation multiplier: 0 disables all
// oscillation, 1 is stock, 2 doubles it. Negative input is floored at 0.
func (a *Animator) SetGlobalOscFactor(f float64) {
	a.globalOsc = clampNonNeg(f)
	a.logf("global oscillation factor set to %.2f", a.globalOsc)
}

// SetJointOscFactor sets the oscillation multiplier for one joint. Negative
// input is floored at 0. An unknown joint is reported and left alone.
func (a *Animator) SetJointOscFactor(name JointName, f float64) {
	j := a.reg.lookup(name)
	if j == nil {
		a.logf("unknown joint %q, oscillation factor not set", name)
		return
	}
	j.OscFactor = clampNonNeg(f)
	a.logf("joint %s oscillation factor set to %.2f", name, j.OscFactor)
}

// SetAllJointsOscFactor sets the oscillation multiplier for every registered
// joint. Negative input is floored at 0.
func (a *Animator) SetAllJointsOscFactor(f float64) {
	f = clampNonNeg(f)
	for _, name := range a.reg.Names() {
		a.reg.lookup(name).OscFactor = f
	}
	a.logf("all joints oscillation factor set to %.2f", f)
}

// SetOscAmplitude sets a joint's base oscillation amplitude, in the joint's
// value unit. Negative input is floored at 0.
func (a *Animator) SetOscAmplitude(name JointName, amp float64) {
	j := a.reg.lookup(name)
	if j == nil {
		a.logf("unknown joint %q, amplitude not set", name)
		return
	}
	j.Osc.BaseAmp = clampNonNeg(amp)
	a.logf("joint %s base amplitude set to %.4f", name, j.Osc.BaseAmp)
}

// SetOscFrequency sets a joint's oscillation frequency in cycles per frame.
func (a *Animator) SetOscFrequency(name JointName, freq float64) {
	j := a.reg.lookup(name)
	if j == nil {
		a.logf("unknown joint %q, frequency not set", name)
		return
	}
	j.Osc.Freq = freq
	a.logf("joint %s frequency set to %.3f", name, freq)
}

// AddKeyframe stores a target pose at the given frame, overwriting any
// existing keyframe there.
func (a *Animator) AddKeyframe(frame int, values Pose) error {
	if err := a.keys.Add(frame, values); err != nil {
		return err
	}
	a.logf("added keyframe at frame %d (%d joints)", frame, len(values))
	return nil
}

// Keyframes exposes the animator's keyframe store.
func (a *Animator) Keyframes() *Keyframes {
	return a.keys
}

// Generate runs the full pipeline: normalize the keyframe store, interpolate
// every segment with oscillation overlaid, then smooth. With no keyframes at
// all it falls back to the built-in pick-and-place demo sequence. The
// returned trajectory passes exactly through every keyframe value.
func (a *Animator) Generate() *Trajectory {
	if a.keys.Len() == 0 {
		a.logf("no keyframes defined, using default pick-and-place sequence")
		a.addDefaultSequence()
	}

	a.keys.Normalize(a.reg)
	frames := a.keys.SortedFrames()
	a.logf("generating %d frames over %d keyframes", a.cfg.TotalFrames, len(frames))

	tr := NewTrajectory(a.cfg.TotalFrames, a.reg.Names())

	for i := 0; i+1 < len(frames); i++ {
		start, _ := a.keys.At(frames[i])
		end, _ := a.keys.At(frames[i+1])
		seg := segment{
			startFrame: frames[i],
			endFrame:   frames[i+1],
			start:      start,
			end:        end,
		}
		a.renderSegment(tr, seg, frames)
	}

	// Single-keyframe runs (total frames 1) have no segment to walk; the one
	// pose is copied out directly.
	if len(frames) == 1 {
		seg := segment{startFrame: frames[0], endFrame: frames[0]}
		seg.start, _ = a.keys.At(frames[0])
		seg.end = seg.start
		a.renderSegment(tr, seg, frames)
	}

	smooth(tr, a.reg, func(frame int) bool {
		return a.inPrecisionZone(frame, frames)
	})

	return tr
}

// renderSegment writes base value plus gated oscillation for every frame in
// the closed segment interval and every registered joint. Shared boundary
// frames are written by both adjoining segments; both writes compute the same
// value since the segments share the keyframe pose there.
func (a *Animator) renderSegment(tr *Trajectory, seg segment, keyframes []int) {
	joints := a.reg.Joints()
	speed := make([]float64, len(joints))
	for i, j := range joints {
		speed[i] = seg.speedFactor(j)
	}

	for frame := seg.startFrame; frame <= seg.endFrame; frame++ {
		precision := a.inPrecisionZone(frame, keyframes)
		for i, j := range joints {
			value := seg.base(j, frame)
			if !precision && j.OscFactor > 0 {
				if j.Kind != Slider || seg.movement(j) >= a.cfg.SliderStillness {
					value += a.oscillation(j.Name, frame, speed[i])
				}
			}
			tr.Set(frame, j.Name, value)
		}
	}
}

// addDefaultSequence installs the canonical pick-and-place motion: home,
// approach, pickup, hold with gripper closed, lift, transport, place, and
// back home. Stage frames are laid out for the stock 400-frame run and scale
// proportionally for other lengths.
func (a *Animator) addDefaultSequence() {
	type stage struct {
		frame int
		pose  Pose
	}
	stages := []stage{
		{0, Pose{Joint1: 0, Joint2: 0, Joint3: 20, Joint4: 0, Joint5: 0, Joint6: 0, Joint7: 0, SliderLeft: -0.022, SliderRight: 0.022}},
		{180, Pose{Joint1: 0, Joint2: -75, Joint3: 30, Joint4: -5, Joint5: 80, Joint6: -85, Joint7: 0, SliderLeft: -0.003, SliderRight: 0.003}},
		{200, Pose{Joint1: 0, Joint2: -84, Joint3: 31.2, Joint4: 0, Joint5: 65, Joint6: -90, Joint7: 0, SliderLeft: -0.003, SliderRight: 0.003}},
		{210, Pose{Joint1: 0, Joint2: -84, Joint3: 31.2, Joint4: 0, Joint5: 65, Joint6: -90, Joint7: 0, SliderLeft: -0.022, SliderRight: 0.022}},
		{230, Pose{Joint1: 0, Joint2: -70, Joint3: 35, Joint4: 10, Joint5: 70, Joint6: -70, Joint7: 2, SliderLeft: -0.022, SliderRight: 0.022}},
		{300, Pose{Joint1: -45, Joint2: -50, Joint3: 40, Joint4: -20, Joint5: 40, Joint6: 30, Joint7: 6, SliderLeft: -0.022, SliderRight: 0.022}},
		{350, Pose{Joint1: -45, Joint2: -80, Joint3: 32, Joint4: -15, Joint5: 85, Joint6: -75, Joint7: 6, SliderLeft: -0.003, SliderRight: 0.003}},
		{399, Pose{Joint1: 0, Joint2: 0, Joint3: 20, Joint4: 0, Joint5: 0, Joint6: 0, Joint7: 0, SliderLeft: -0.022, SliderRight: 0.022}},
	}
	last := a.cfg.TotalFrames - 1
	for _, s := range stages {
		frame := s.frame * last / 399
		if err := a.keys.Add(frame, s.pose); err != nil {
			// Unreachable for a positive frame count; stages scale into range.
			a.logf("default stage at frame %d skipped: %v", frame, err)
		}
	}
}

func clampNonNeg(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

// String identifies the animator in logs.
func (a *Animator) String() string {
	return fmt.Sprintf("Animator(%d frames, %d joints)", a.cfg.TotalFrames, a.reg.Len())
}
