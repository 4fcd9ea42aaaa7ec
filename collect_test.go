package gesture

import "testing"

func TestCollectNoCollectors(t *testing.T) {
	s := NewSession(Config{Clock: NewFrameClock(testEpoch)})
	if got := s.Collect(EventDown, rawAt(1, 0, 0, &node{"a"})); len(got) != 0 {
		t.Errorf("Collect = %v, want empty", got)
	}
}

func TestCollectContext(t *testing.T) {
	s := NewSession(Config{Clock: NewFrameClock(testEpoch)})
	target := &node{"a"}
	var seen CollectContext
	s.OnCollect(func(ctx *CollectContext) { seen = *ctx })

	raw := rawAt(3, 4, 5, target)
	raw.Native = "native"
	s.Collect(EventHold, raw)

	if seen.Session != s {
		t.Error("Session not set")
	}
	if seen.Type != EventHold {
		t.Errorf("Type = %v, want hold", seen.Type)
	}
	if seen.Pointer.ID != 3 || seen.Pointer.X != 4 || seen.Pointer.Y != 5 {
		t.Errorf("Pointer = %+v", seen.Pointer)
	}
	if seen.EventTarget != target || seen.Node != target {
		t.Errorf("EventTarget = %v, Node = %v, want %v", seen.EventTarget, seen.Node, target)
	}
	if seen.Native != "native" {
		t.Errorf("Native = %v, want native", seen.Native)
	}
}

func TestCollectPathAndOrder(t *testing.T) {
	child, parent := &node{"child"}, &node{"parent"}
	s := NewSession(Config{
		Clock: NewFrameClock(testEpoch),
		Path: func(target any) []any {
			if target == child {
				return []any{child, parent}
			}
			return []any{target}
		},
	})

	var order []string
	s.OnCollect(func(ctx *CollectContext) {
		order = append(order, "c1:"+ctx.Node.(*node).name)
	})
	h := s.OnCollect(func(ctx *CollectContext) {
		order = append(order, "c2:"+ctx.Node.(*node).name)
	})
	s.Collect(EventDown, rawAt(1, 0, 0, child))

	want := []string{"c1:child", "c2:child", "c1:parent", "c2:parent"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}

	order = nil
	h.Remove()
	s.Collect(EventDown, rawAt(1, 0, 0, child))
	if len(order) != 2 {
		t.Errorf("after Remove order = %v, want 2 entries", order)
	}
}

func TestOnCollectNil(t *testing.T) {
	s := NewSession(Config{Clock: NewFrameClock(testEpoch)})
	h := s.OnCollect(nil)
	h.Remove()
	if n := len(s.collectors.entries); n != 0 {
		t.Errorf("collectors = %d, want 0", n)
	}
}
