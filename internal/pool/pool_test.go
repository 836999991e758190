package pool

import "testing"

type item struct {
	id    int
	value float64
}

func TestAcquireUsesFactoryWhenEmpty(t *testing.T) {
	made := 0
	p := New(func() *item { made++; return &item{id: made} }, 4)

	a := p.Acquire()
	b := p.Acquire()
	if a == b {
		t.Fatal("two acquires without release must return distinct objects")
	}
	if made != 2 {
		t.Fatalf("factory calls = %d, want 2", made)
	}
	if p.Active() != 2 || p.Idle() != 0 {
		t.Fatalf("active=%d idle=%d, want 2 and 0", p.Active(), p.Idle())
	}
}

func TestReleasedObjectIsReusedWithoutReset(t *testing.T) {
	made := 0
	p := New(func() *item { made++; return &item{} }, 4)

	a := p.Acquire()
	a.value = 42
	p.Release(a)

	b := p.Acquire()
	if b != a {
		t.Fatal("expected the released object to be handed out again")
	}
	if b.value != 42 {
		t.Fatalf("value = %v, pool must not reset fields", b.value)
	}
	if made != 1 {
		t.Fatalf("factory calls = %d, want 1", made)
	}
}

func TestDoubleReleaseIsNoop(t *testing.T) {
	p := New[item](nil, 4)
	a := p.Acquire()
	p.Release(a)
	p.Release(a)
	p.Release(&item{})
	p.Release(nil)

	if p.Idle() != 1 {
		t.Fatalf("idle = %d, want 1 after double release", p.Idle())
	}
	x := p.Acquire()
	y := p.Acquire()
	if x == y {
		t.Fatal("double release must not let one object have two owners")
	}
}

func TestRetentionCap(t *testing.T) {
	p := New[item](nil, 2)
	objs := make([]*item, 5)
	for i := range objs {
		objs[i] = p.Acquire()
	}
	for _, o := range objs {
		p.Release(o)
	}
	if p.Idle() != 2 {
		t.Fatalf("idle = %d, want retention cap 2", p.Idle())
	}
	if p.Active() != 0 {
		t.Fatalf("active = %d, want 0", p.Active())
	}
}

func TestDefaultRetention(t *testing.T) {
	if got := New[item](nil, 0).Retention(); got != DefaultRetention {
		t.Fatalf("retention = %d, want %d", got, DefaultRetention)
	}
}
