package enrs_test

import (
	"testing"

	"github.com/OvermindDL1/enrs"
)

func collectView2(v *enrs.View2[Position, Velocity]) map[enrs.Entity]bool {
	out := make(map[enrs.Entity]bool)
	v.Reset()
	for v.Next() {
		out[v.Entity()] = true
	}
	return out
}

func TestViewIntersection(t *testing.T) {
	reg := enrs.NewRegistry()

	both := reg.CreateN(5)
	posOnly := reg.CreateN(5)
	velOnly := reg.CreateN(3)
	for _, e := range both {
		if _, err := enrs.Emplace(reg, e, Position{}); err != nil {
			t.Fatal(err)
		}
		if _, err := enrs.Emplace(reg, e, Velocity{}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range posOnly {
		if _, err := enrs.Emplace(reg, e, Position{}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range velOnly {
		if _, err := enrs.Emplace(reg, e, Velocity{}); err != nil {
			t.Fatal(err)
		}
	}

	got := collectView2(enrs.NewView2[Position, Velocity](reg))
	if len(got) != len(both) {
		t.Fatalf("View yielded %d entities, want %d", len(got), len(both))
	}
	for _, e := range both {
		if !got[e] {
			t.Errorf("View missed entity %v", e)
		}
	}
}

func TestViewDriverIndependence(t *testing.T) {
	// The yielded set must not depend on which pool drives. Run the same
	// population with sizes flipped so each pool gets its turn as the
	// smallest.
	for _, posCount := range []int{3, 20} {
		reg := enrs.NewRegistry()
		matching := reg.CreateN(3)
		for _, e := range matching {
			if _, err := enrs.Emplace(reg, e, Position{}); err != nil {
				t.Fatal(err)
			}
			if _, err := enrs.Emplace(reg, e, Velocity{}); err != nil {
				t.Fatal(err)
			}
		}
		for _, e := range reg.CreateN(posCount) {
			if _, err := enrs.Emplace(reg, e, Position{}); err != nil {
				t.Fatal(err)
			}
		}
		got := collectView2(enrs.NewView2[Position, Velocity](reg))
		if len(got) != len(matching) {
			t.Fatalf("posCount=%d: yielded %d entities, want %d", posCount, len(got), len(matching))
		}
	}
}

func TestViewExclusion(t *testing.T) {
	reg := enrs.NewRegistry()
	tagID := enrs.RegisterComponent[Tag](reg)

	plain := reg.CreateN(4)
	tagged := reg.CreateN(3)
	for _, e := range append(append([]enrs.Entity(nil), plain...), tagged...) {
		if _, err := enrs.Emplace(reg, e, Position{}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range tagged {
		if _, err := enrs.Emplace(reg, e, Tag{}); err != nil {
			t.Fatal(err)
		}
	}

	view := enrs.NewView[Position](reg, tagID)
	var got []enrs.Entity
	for view.Next() {
		got = append(got, view.Entity())
	}
	if len(got) != len(plain) {
		t.Fatalf("Excluding view yielded %d entities, want %d", len(got), len(plain))
	}
	for _, e := range got {
		if enrs.Has[Tag](reg, e) {
			t.Errorf("Excluded entity %v was yielded", e)
		}
	}
}

func TestViewAdaptsToMutation(t *testing.T) {
	reg := enrs.NewRegistry()
	e := reg.Create()
	if _, err := enrs.Emplace(reg, e, Position{}); err != nil {
		t.Fatal(err)
	}

	view := enrs.NewView2[Position, Velocity](reg)
	if view.Next() {
		t.Error("View over empty intersection should yield nothing")
	}

	if _, err := enrs.Emplace(reg, e, Velocity{}); err != nil {
		t.Fatal(err)
	}
	view.Reset()
	if !view.Next() || view.Entity() != e {
		t.Error("Reset view must observe the new intersection")
	}
	if view.Next() {
		t.Error("View should yield exactly one entity")
	}
}

func TestViewEach(t *testing.T) {
	reg := enrs.NewRegistry()
	ents := reg.CreateN(10)
	for i, e := range ents {
		if _, err := enrs.Emplace(reg, e, Position{X: float32(i)}); err != nil {
			t.Fatal(err)
		}
		if i%2 == 0 {
			if _, err := enrs.Emplace(reg, e, Velocity{VX: 1}); err != nil {
				t.Fatal(err)
			}
		}
	}

	count := 0
	err := enrs.NewView2[Position, Velocity](reg).Each(func(e enrs.Entity, p *Position, v *Velocity) {
		p.X += v.VX
		count++
	})
	if err != nil {
		t.Fatalf("Each failed: %v", err)
	}
	if count != 5 {
		t.Fatalf("Each visited %d entities, want 5", count)
	}
	if enrs.Get[Position](reg, ents[2]).X != 3 {
		t.Error("Each mutation was not persisted")
	}
	if enrs.Get[Position](reg, ents[1]).X != 1 {
		t.Error("Each touched a non-matching entity")
	}
}

func TestView3And4(t *testing.T) {
	reg := enrs.NewRegistry()
	full := reg.Create()
	partial := reg.Create()

	for _, e := range []enrs.Entity{full, partial} {
		if _, err := enrs.Emplace(reg, e, Position{}); err != nil {
			t.Fatal(err)
		}
		if _, err := enrs.Emplace(reg, e, Velocity{}); err != nil {
			t.Fatal(err)
		}
		if _, err := enrs.Emplace(reg, e, Health{}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := enrs.Emplace(reg, full, Tag{}); err != nil {
		t.Fatal(err)
	}

	v3 := enrs.NewView3[Position, Velocity, Health](reg)
	n := 0
	for v3.Next() {
		p, v, h := v3.Get()
		if p == nil || v == nil || h == nil {
			t.Fatal("View3 Get returned nil component")
		}
		n++
	}
	if n != 2 {
		t.Fatalf("View3 yielded %d entities, want 2", n)
	}

	v4 := enrs.NewView4[Position, Velocity, Health, Tag](reg)
	if !v4.Next() || v4.Entity() != full {
		t.Fatal("View4 must yield exactly the fully equipped entity")
	}
	if v4.Next() {
		t.Fatal("View4 yielded surplus entities")
	}
}
