package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	l := New(3, time.Minute)
	for i := 0; i < 3; i++ {
		if ok, _ := l.Allow("ana@teste.com"); !ok {
			t.Fatalf("attempt %d blocked", i+1)
		}
	}
	ok, retry := l.Allow("ana@teste.com")
	if ok {
		t.Fatal("fourth attempt allowed")
	}
	if retry <= 0 || retry > time.Minute {
		t.Fatalf("retry after: %v", retry)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)
	if ok, _ := l.Allow("a"); !ok {
		t.Fatal("first key blocked")
	}
	if ok, _ := l.Allow("a"); ok {
		t.Fatal("first key not limited")
	}
	if ok, _ := l.Allow("b"); !ok {
		t.Fatal("second key blocked by first")
	}
}

func TestWindowExpires(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := New(1, time.Minute)
	l.now = func() time.Time { return now }

	l.Allow("ana")
	if ok, _ := l.Allow("ana"); ok {
		t.Fatal("limit not enforced")
	}

	now = now.Add(61 * time.Second)
	if ok, _ := l.Allow("ana"); !ok {
		t.Fatal("window did not reset")
	}
}

func TestResetClearsWindow(t *testing.T) {
	l := New(1, time.Minute)
	l.Allow("ana")
	l.Reset("ana")
	if ok, _ := l.Allow("ana"); !ok {
		t.Fatal("reset did not clear the window")
	}
}
