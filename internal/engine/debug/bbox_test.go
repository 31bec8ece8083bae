package debug

import "testing"

func TestBoxWireframeVertices(t *testing.T) {
	verts := BoxWireframeVertices(-1, -2, -3, 1, 2, 3)

	if len(verts) != BoxWireframeVertexCount*3 {
		t.Fatalf("got %d floats, want %d", len(verts), BoxWireframeVertexCount*3)
	}

	// Every vertex must be a corner of the box.
	for i := 0; i < len(verts); i += 3 {
		x, y, z := verts[i], verts[i+1], verts[i+2]
		if x != -1 && x != 1 {
			t.Errorf("vertex %d: x = %v, want -1 or 1", i/3, x)
		}
		if y != -2 && y != 2 {
			t.Errorf("vertex %d: y = %v, want -2 or 2", i/3, y)
		}
		if z != -3 && z != 3 {
			t.Errorf("vertex %d: z = %v, want -3 or 3", i/3, z)
		}
	}

	// Line-list edges must be axis-aligned: exactly one coordinate
	// differs between the two endpoints of each edge.
	for i := 0; i+5 < len(verts); i += 6 {
		diffs := 0
		for c := 0; c < 3; c++ {
			if verts[i+c] != verts[i+3+c] {
				diffs++
			}
		}
		if diffs != 1 {
			t.Errorf("edge %d: %d coordinates differ, want 1", i/6, diffs)
		}
	}
}

func TestBoxWireframePadded(t *testing.T) {
	verts := BoxWireframePadded(
		[3]float32{0, 0, 0}, [3]float32{1, 1, 1}, 0.5)

	for i := 0; i < len(verts); i += 3 {
		for c := 0; c < 3; c++ {
			v := verts[i+c]
			if v != -0.5 && v != 1.5 {
				t.Errorf("vertex %d coord %d = %v, want -0.5 or 1.5", i/3, c, v)
			}
		}
	}
}
