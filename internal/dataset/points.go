package dataset

import "math"

// PointSpec names the columns a scatter or map layer is drawn from. X and Y
// are required; the rest may be empty.
type PointSpec struct {
	X, Y  string
	Size  string
	Label string
	Text  string
}

// Point is one plotted row. Rows missing X or Y are not plotted.
type Point struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Size  *float64 `json:"size,omitempty"`
	Label string   `json:"label,omitempty"`
	Text  string   `json:"text,omitempty"`
}

// Points extracts the plotted columns of every row that has both
// coordinates.
func Points(t *Table, spec PointSpec) ([]Point, error) {
	xs, err := t.Floats(spec.X)
	if err != nil {
		return nil, err
	}
	ys, err := t.Floats(spec.Y)
	if err != nil {
		return nil, err
	}
	var sizes []float64
	if spec.Size != "" {
		if sizes, err = t.Floats(spec.Size); err != nil {
			return nil, err
		}
	}
	var labels, texts []string
	if spec.Label != "" {
		if labels, _, err = t.Strings(spec.Label); err != nil {
			return nil, err
		}
	}
	if spec.Text != "" {
		if texts, _, err = t.Strings(spec.Text); err != nil {
			return nil, err
		}
	}

	out := make([]Point, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		p := Point{X: xs[i], Y: ys[i]}
		if sizes != nil && !math.IsNaN(sizes[i]) {
			s := sizes[i]
			p.Size = &s
		}
		if labels != nil {
			p.Label = labels[i]
		}
		if texts != nil {
			p.Text = texts[i]
		}
		out = append(out, p)
	}
	return out, nil
}
