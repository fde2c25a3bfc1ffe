package tree

import (
	"errors"
	"math"
	"slices"
	"testing"

	"canvas-sims/internal/geom"
	"canvas-sims/pkg/core"
)

func TestGenerateDepthOne(t *testing.T) {
	tr, err := Generate(core.NewRNG(1), geom.Point{X: 5, Y: 5}, Fixed(1), Fixed(5), 100, 50)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	kids := tr.Children(tr.Root())
	if len(kids) != 5 {
		t.Fatalf("root has %d children, want 5", len(kids))
	}
	for _, k := range kids {
		if n := len(tr.Children(k)); n != 0 {
			t.Fatalf("child %d has %d children, want none", k, n)
		}
		p := tr.Value(k)
		if p.X < 0 || p.X >= 100 || p.Y < 0 || p.Y >= 50 {
			t.Fatalf("child point %v outside [0,100)x[0,50)", p)
		}
	}
	if tr.Len() != 6 || tr.Height() != 1 {
		t.Fatalf("len %d height %d", tr.Len(), tr.Height())
	}
}

func TestGenerateDepthTwo(t *testing.T) {
	tr, err := Generate(core.NewRNG(2), geom.Point{}, Fixed(2), Fixed(3), 10, 10)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, k := range tr.Children(tr.Root()) {
		if n := len(tr.Children(k)); n != 3 {
			t.Fatalf("child %d has %d grandchildren, want 3", k, n)
		}
		for _, g := range tr.Children(k) {
			if tr.Depth(g) != 2 {
				t.Fatalf("grandchild depth = %d", tr.Depth(g))
			}
		}
	}
	if tr.Len() != 1+3+9 {
		t.Fatalf("len = %d, want 13", tr.Len())
	}
}

func TestGenerateZeroDepth(t *testing.T) {
	tr, err := Generate(core.NewRNG(2), geom.Point{}, Fixed(0), Fixed(3), 10, 10)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if tr.Len() != 1 {
		t.Fatalf("len = %d, want only the root", tr.Len())
	}
}

func TestGenerateRandomBranchVaries(t *testing.T) {
	tr, err := Generate(core.NewRNG(11), geom.Point{}, Fixed(3), RandomInt(1, 4), 10, 10)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	tr.Walk(func(id NodeID, _ geom.Point) bool {
		n := len(tr.Children(id))
		if tr.Depth(id) < 3 && (n < 1 || n > 3) {
			t.Fatalf("node %d has %d children, want 1..3", id, n)
		}
		return true
	})
}

type countingSource struct {
	src   IntSource
	calls int
}

func (c *countingSource) Int(rng *core.RNG) (int, error) {
	c.calls++
	return c.src.Int(rng)
}

func TestGenerateDrawsDepthOncePerTree(t *testing.T) {
	depth := &countingSource{src: RandomInt(2, 5)}
	branch := &countingSource{src: Fixed(2)}
	tr, err := Generate(core.NewRNG(9), geom.Point{}, depth, branch, 10, 10)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if depth.calls != 1 {
		t.Fatalf("depth drawn %d times, want 1", depth.calls)
	}
	h := tr.Height()
	if h < 2 || h > 4 {
		t.Fatalf("height = %d, want 2..4", h)
	}
	// Every internal node draws its own branch factor.
	if want := tr.Len() - tr.Leaves(); branch.calls != want {
		t.Fatalf("branch drawn %d times, want %d", branch.calls, want)
	}
	tr.Walk(func(id NodeID, _ geom.Point) bool {
		if len(tr.Children(id)) == 0 && tr.Depth(id) != h {
			t.Fatalf("leaf %d at depth %d, want %d", id, tr.Depth(id), h)
		}
		return true
	})
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate(core.NewRNG(1), geom.Point{}, RandomInt(3, 3), Fixed(2), 10, 10); !errors.Is(err, core.ErrInvalidRange) {
		t.Fatalf("empty depth range err = %v", err)
	}
	if _, err := Generate(core.NewRNG(1), geom.Point{}, Fixed(40), Fixed(5), 10, 10); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("huge tree err = %v", err)
	}
	if _, err := Generate(core.NewRNG(1), geom.Point{}, Fixed(1), Fixed(1), math.NaN(), 10); !errors.Is(err, geom.ErrInvalidNumber) {
		t.Fatalf("NaN scale err = %v", err)
	}
}

func TestWalkOrderAndSkip(t *testing.T) {
	tr := New("root")
	a, _ := tr.AddChild(tr.Root(), "a")
	b, _ := tr.AddChild(tr.Root(), "b")
	tr.AddChild(a, "a1")
	tr.AddChild(b, "b1")

	var seen []string
	tr.Walk(func(_ NodeID, v string) bool {
		seen = append(seen, v)
		return v != "b"
	})
	if want := []string{"root", "a", "a1", "b"}; !slices.Equal(seen, want) {
		t.Fatalf("walk = %v, want %v", seen, want)
	}
	if p, ok := tr.Parent(a); !ok || p != tr.Root() {
		t.Fatalf("Parent(a) = %d, %v", p, ok)
	}
	if _, ok := tr.Parent(tr.Root()); ok {
		t.Fatal("root reported a parent")
	}
	if _, err := tr.AddChild(99, "x"); !errors.Is(err, ErrNoNode) {
		t.Fatalf("AddChild bad parent err = %v", err)
	}
	if tr.Leaves() != 2 {
		t.Fatalf("leaves = %d", tr.Leaves())
	}
}

func TestConvertIsIsomorphic(t *testing.T) {
	src, err := Generate(core.NewRNG(4), geom.Point{}, Fixed(3), Fixed(2), 10, 10)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	dst := Convert(src, func(p geom.Point) float64 { return p.X })
	if dst.Len() != src.Len() {
		t.Fatalf("len %d != %d", dst.Len(), src.Len())
	}
	for i := 0; i < src.Len(); i++ {
		id := NodeID(i)
		if dst.Value(id) != src.Value(id).X {
			t.Fatalf("node %d payload %v", i, dst.Value(id))
		}
		sp, sok := src.Parent(id)
		dp, dok := dst.Parent(id)
		if sp != dp || sok != dok || len(src.Children(id)) != len(dst.Children(id)) {
			t.Fatalf("node %d shape differs", i)
		}
	}
}

func TestAnimateAndSnapshot(t *testing.T) {
	src, err := Generate(core.NewRNG(5), geom.Point{X: 50, Y: 50}, Fixed(2), Fixed(2), 100, 100)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	spec := CirclingSpec{Period: 10, PeriodVariance: 2, Radius: 30, RadiusVariance: 5}
	anim, err := Animate(src, core.NewRNG(6), spec)
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	snap := Snapshot(anim, 0)
	for i := 0; i < src.Len(); i++ {
		id := NodeID(i)
		home, now := src.Value(id), snap.Value(id)
		// At t=0 the point sits at center + (0, radius/period); radius/period
		// is at most 35/8.
		if now.X != home.X || now.Y < home.Y || now.Y-home.Y > 35.0/8+1e-9 {
			t.Fatalf("node %d at %v, home %v", i, now, home)
		}
	}
	if _, err := Animate(src, core.NewRNG(6), CirclingSpec{Period: -1}); err == nil {
		t.Fatal("non-positive periods accepted")
	}
}

func TestGrowRespectsBlueprint(t *testing.T) {
	bp := DefaultBlueprint()
	bp.Steps = Range{Min: 4, Max: 4}
	bp.Forks = Range{Min: 2, Max: 2}
	base := geom.Point{X: 200, Y: 600}
	tr, plan, err := Grow(core.NewRNG(8), bp, base)
	if err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if plan.Steps != 4 || plan.Height < 100 || plan.Height > 800 {
		t.Fatalf("plan = %+v", plan)
	}
	// root + trunk top + 2 + 4 + 8 + 16
	if tr.Len() != 2+2+4+8+16 {
		t.Fatalf("len = %d", tr.Len())
	}
	tr.Walk(func(id NodeID, n SpikyNode) bool {
		if n.Point.Y > base.Y {
			t.Fatalf("node %d grew below the base: %v", id, n.Point)
		}
		if p, ok := tr.Parent(id); ok && n.Step > 0 && n.Step != tr.Value(p).Step+1 {
			t.Fatalf("node %d step %d under parent step %d", id, n.Step, tr.Value(p).Step)
		}
		return true
	})
	trunkTop := tr.Value(tr.Children(tr.Root())[0])
	if trunkTop.Color != bp.Trunk {
		t.Fatalf("trunk color = %v", trunkTop.Color)
	}
}

func TestGrowNodeCap(t *testing.T) {
	bp := DefaultBlueprint()
	bp.Steps = Range{Min: 20, Max: 20}
	bp.Forks = Range{Min: 5, Max: 5}
	bp.MaxNodes = 100
	tr, _, err := Grow(core.NewRNG(9), bp, geom.Point{})
	if err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if tr.Len() != 100 {
		t.Fatalf("len = %d, want cap 100", tr.Len())
	}
	bp.Height = Range{Min: 5, Max: 1}
	if _, _, err := Grow(core.NewRNG(9), bp, geom.Point{}); !errors.Is(err, core.ErrInvalidRange) {
		t.Fatalf("inverted range err = %v", err)
	}
}
