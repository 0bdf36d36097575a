package manifold

import "testing"

func TestClassifyComplete(t *testing.T) {
	occ := [4]VertexIndex{0, 1, 2, 3}
	typ, _ := classify(occ)
	if typ != RingComplete {
		t.Errorf("classify(all set) = %v, want Complete", typ)
	}
}

func TestClassifyCorner(t *testing.T) {
	occ := [4]VertexIndex{NoVertex, NoVertex, 5, NoVertex}
	typ, rot := classify(occ)
	if typ != RingCorner {
		t.Fatalf("classify(one set) = %v, want Corner", typ)
	}
	if rot != 2 {
		t.Errorf("rot = %d, want 2 (the set slot)", rot)
	}
}

func TestClassifyEdgeAdjacent(t *testing.T) {
	occ := [4]VertexIndex{0, 1, NoVertex, NoVertex}
	typ, rot := classify(occ)
	if typ != RingEdge {
		t.Fatalf("classify(adjacent pair) = %v, want Edge", typ)
	}
	if rot != 0 {
		t.Errorf("rot = %d, want 0", rot)
	}
}

func TestClassifyDiagonal(t *testing.T) {
	occ := [4]VertexIndex{0, NoVertex, 2, NoVertex}
	typ, rot := classify(occ)
	if typ != RingDiagonal {
		t.Fatalf("classify(opposite pair) = %v, want Diagonal", typ)
	}
	if rot != 0 {
		t.Errorf("rot = %d, want 0", rot)
	}
}

func TestClassifyInvertedCorner(t *testing.T) {
	occ := [4]VertexIndex{0, 1, 2, NoVertex}
	typ, rot := classify(occ)
	if typ != RingInvertedCorner {
		t.Fatalf("classify(three set) = %v, want InvertedCorner", typ)
	}
	// missing=3, rot should place missing at slot 3 after rotation: (3+1)%4=0.
	if rot != 0 {
		t.Errorf("rot = %d, want 0", rot)
	}
}

func TestClassifyEmpty(t *testing.T) {
	occ := [4]VertexIndex{NoVertex, NoVertex, NoVertex, NoVertex}
	typ, _ := classify(occ)
	if typ != RingInvalid {
		t.Errorf("classify(none set) = %v, want Invalid", typ)
	}
}
