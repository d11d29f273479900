package render

const (
	flowWidth      = 360.0
	flowHeight     = 130.0
	flowNodeHeight = 40.0
	flowPad        = 8.0
	flowArrowGap   = 4.0
)

type flowNode struct {
	X, Y, W, H   float64
	CX           float64
	LabelY, SubY float64
	Label, Sub   string
	Primary      bool
}

type flowArrow struct {
	X1, Y1, X2, Y2 float64
}

type flowView struct {
	Title    string
	Width    float64
	Height   float64
	MarkerID string
	Nodes    []flowNode
	Arrows   []flowArrow
}

// layoutFlow places nodes left to right across a fixed view box with equal
// widths and uniform padding, joining neighbours with an arrow.
func layoutFlow(spec *flowSpec, markerID string) *flowView {
	if spec == nil || len(spec.Nodes) == 0 {
		return nil
	}
	n := float64(len(spec.Nodes))
	w := float64(int((flowWidth - flowPad*(n+1)) / n))
	y := (flowHeight - flowNodeHeight) / 2

	v := &flowView{
		Title:    spec.Title,
		Width:    flowWidth,
		Height:   flowHeight,
		MarkerID: markerID,
		Nodes:    make([]flowNode, 0, len(spec.Nodes)),
	}
	for i, ns := range spec.Nodes {
		x := flowPad + float64(i)*(w+flowPad)
		labelY := y + flowNodeHeight/2 + 5
		if ns.Sub != "" {
			labelY = y + 18
		}
		v.Nodes = append(v.Nodes, flowNode{
			X:       x,
			Y:       y,
			W:       w,
			H:       flowNodeHeight,
			CX:      x + w/2,
			LabelY:  labelY,
			SubY:    y + 31,
			Label:   ns.Label,
			Sub:     ns.Sub,
			Primary: ns.Primary,
		})
	}
	for i := 0; i+1 < len(v.Nodes); i++ {
		a, b := v.Nodes[i], v.Nodes[i+1]
		mid := a.Y + a.H/2
		v.Arrows = append(v.Arrows, flowArrow{X1: a.X + a.W, Y1: mid, X2: b.X - flowArrowGap, Y2: mid})
	}
	return v
}
