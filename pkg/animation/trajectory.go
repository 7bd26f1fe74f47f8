package animation

// Trajectory is the generated table: one row per frame, one value per
// registered joint. It is the sole artifact consumed downstream; once
// returned from Generate it is owned by the caller and no longer mutated.
type Trajectory struct {
	names []JointName
	index map[JointName]int
	rows  [][]float64
}

// NewTrajectory allocates a zeroed table for totalFrames rows with the given
// column order.
func NewTrajectory(totalFrames int, names []JointName) *Trajectory {
	t := &Trajectory{
		names: names,
		index: make(map[JointName]int, len(names)),
		rows:  make([][]float64, totalFrames),
	}
	for i, name := range names {
		t.index[name] = i
	}
	for f := range t.rows {
		t.rows[f] = make([]float64, len(names))
	}
	return t
}

// Frames returns the number of rows.
func (t *Trajectory) Frames() int {
	return len(t.rows)
}

// Joints returns the column order.
func (t *Trajectory) Joints() []JointName {
	out := make([]JointName, len(t.names))
	copy(out, t.names)
	return out
}

// Value returns the cell at (frame, joint). Unknown joints read as 0.
func (t *Trajectory) Value(frame int, name JointName) float64 {
	i, ok := t.index[name]
	if !ok {
		return 0
	}
	return t.rows[frame][i]
}

// Set writes the cell at (frame, joint). Unknown joints are ignored.
func (t *Trajectory) Set(frame int, name JointName, v float64) {
	if i, ok := t.index[name]; ok {
		t.rows[frame][i] = v
	}
}

// Row returns a copy of one frame's values as a pose.
func (t *Trajectory) Row(frame int) Pose {
	p := make(Pose, len(t.names))
	for i, name := range t.names {
		p[name] = t.rows[frame][i]
	}
	return p
}

// Column returns a copy of one joint's values across all frames.
func (t *Trajectory) Column(name JointName) []float64 {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	out := make([]float64, len(t.rows))
	for f, row := range t.rows {
		out[f] = row[i]
	}
	return out
}

// setColumn replaces one joint's values, for the smoothing pass.
func (t *Trajectory) setColumn(name JointName, values []float64) {
	i, ok := t.index[name]
	if !ok {
		return
	}
	for f := range t.rows {
		t.rows[f][i] = values[f]
	}
}
