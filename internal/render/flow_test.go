package render

import "testing"

func TestLayoutFlow_FitsViewBox(t *testing.T) {
	t.Parallel()
	for n := 1; n <= 6; n++ {
		spec := &flowSpec{Title: "t"}
		for i := 0; i < n; i++ {
			spec.Nodes = append(spec.Nodes, flowNodeSpec{Label: "n"})
		}
		v := layoutFlow(spec, "m")
		if len(v.Nodes) != n {
			t.Fatalf("n=%d: got %d nodes", n, len(v.Nodes))
		}
		if len(v.Arrows) != n-1 {
			t.Fatalf("n=%d: got %d arrows want %d", n, len(v.Arrows), n-1)
		}
		last := v.Nodes[n-1]
		if last.X+last.W > flowWidth {
			t.Fatalf("n=%d: last node ends at %v beyond %v", n, last.X+last.W, flowWidth)
		}
		for i := range v.Nodes {
			if v.Nodes[i].W != v.Nodes[0].W {
				t.Fatalf("n=%d: unequal widths", n)
			}
		}
		for i, a := range v.Arrows {
			if a.X1 >= a.X2 {
				t.Fatalf("n=%d arrow %d points backwards: %v -> %v", n, i, a.X1, a.X2)
			}
		}
	}
}

func TestLayoutFlow_LabelPlacement(t *testing.T) {
	t.Parallel()
	v := layoutFlow(&flowSpec{Nodes: []flowNodeSpec{{Label: "a"}, {Label: "b", Sub: "sub", Primary: true}}}, "m")
	if v.Nodes[0].LabelY <= v.Nodes[1].LabelY {
		t.Fatalf("label without sub should sit lower: got=%v with-sub=%v", v.Nodes[0].LabelY, v.Nodes[1].LabelY)
	}
	if !v.Nodes[1].Primary {
		t.Fatalf("primary flag lost")
	}
}

func TestLayoutFlow_Empty(t *testing.T) {
	t.Parallel()
	if layoutFlow(nil, "m") != nil {
		t.Fatalf("nil spec should yield nil view")
	}
	if layoutFlow(&flowSpec{Title: "x"}, "m") != nil {
		t.Fatalf("spec without nodes should yield nil view")
	}
}
