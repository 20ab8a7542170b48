package gallery

import "testing"

func TestLock_ReleaseIsIdempotentAndNotifies(t *testing.T) {
	var changes []bool
	l := NewLock(func(locked bool) { changes = append(changes, locked) })

	r1 := l.Acquire()
	r2 := l.Acquire()
	r1()
	r1()
	if !l.Held() {
		t.Fatalf("second holder still outstanding")
	}
	r2()
	if l.Held() {
		t.Fatalf("lock should be free")
	}
	if a, r := l.Counts(); a != 2 || r != 2 {
		t.Fatalf("counts = (%d, %d), want (2, 2)", a, r)
	}
	if len(changes) != 2 || !changes[0] || changes[1] {
		t.Fatalf("onChange calls = %v, want [true false]", changes)
	}
}
