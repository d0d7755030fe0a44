package render

import "math"

// IrisTriangles builds an opaque ring mesh covering everything between a
// circle of radius r and a circle of radius outer, both centred on (cx, cy).
// Drawn over the viewport with outer beyond the corners, it leaves a circular
// cutout of radius r.
//
// Source coordinates point at (1, 1); the source image must be white there.
func IrisTriangles(cx, cy, r, outer float32, segments int, clrA float32) ([]Vertex, []uint16) {
	if segments < 3 {
		segments = 3
	}
	if r < 0 {
		r = 0
	}

	vertices := make([]Vertex, 0, segments*2)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		cos, sin := float32(math.Cos(a)), float32(math.Sin(a))
		vertices = append(vertices,
			irisVertex(cx+cos*r, cy+sin*r, clrA),
			irisVertex(cx+cos*outer, cy+sin*outer, clrA),
		)
	}

	indices := make([]uint16, 0, segments*6)
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		in0, out0 := uint16(i*2), uint16(i*2+1)
		in1, out1 := uint16(j*2), uint16(j*2+1)
		indices = append(indices, in0, out0, in1, in1, out0, out1)
	}
	return vertices, indices
}

func irisVertex(x, y, a float32) Vertex {
	return Vertex{DstX: x, DstY: y, SrcX: 1, SrcY: 1, ColorA: a}
}
