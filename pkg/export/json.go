package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goliath-arm/goliath/pkg/animation"
)

// Document is the nested record form of a trajectory: a header plus one
// record per frame with the full per-joint mapping.
type Document struct {
	Joints      []string      `json:"joints"`
	TotalFrames int           `json:"total_frames"`
	Frames      []FrameRecord `json:"frames"`
}

// FrameRecord is one frame's pose.
type FrameRecord struct {
	Frame  int                `json:"frame"`
	Joints map[string]float64 `json:"joints"`
}

// WriteJSON writes the trajectory in the nested record format.
func WriteJSON(w io.Writer, tr *animation.Trajectory) error {
	doc := Document{
		TotalFrames: tr.Frames(),
		Frames:      make([]FrameRecord, tr.Frames()),
	}
	for _, name := range tr.Joints() {
		doc.Joints = append(doc.Joints, string(name))
	}
	for frame := 0; frame < tr.Frames(); frame++ {
		joints := make(map[string]float64, len(doc.Joints))
		for name, v := range tr.Row(frame) {
			joints[string(name)] = v
		}
		doc.Frames[frame] = FrameRecord{Frame: frame, Joints: joints}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteJSONFile writes the nested record format to a file.
func WriteJSONFile(path string, tr *animation.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, tr); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON parses the nested record format back into a table with columns in
// the document's joint order.
func ReadJSON(r io.Reader) (*Table, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode trajectory document: %w", err)
	}
	if len(doc.Joints) == 0 {
		return nil, fmt.Errorf("trajectory document has no joints")
	}

	t := &Table{Columns: doc.Joints}
	for _, rec := range doc.Frames {
		row := make([]float64, len(doc.Joints))
		for i, name := range doc.Joints {
			row[i] = rec.Joints[name]
		}
		t.Frames = append(t.Frames, rec.Frame)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadJSONFile parses the nested record format from a file.
func ReadJSONFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}
