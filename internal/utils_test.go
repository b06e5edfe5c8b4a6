package internal

import (
	"testing"
	"time"
)

func TestEnv(t *testing.T) {
	t.Setenv("APP_TEST_KEY", "valor")
	if got := Env("APP_TEST_KEY", "def"); got != "valor" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("APP_TEST_KEY", "   ")
	if got := Env("APP_TEST_KEY", "def"); got != "def" {
		t.Fatalf("blank value: got %q", got)
	}
	if got := Env("APP_TEST_MISSING", "def"); got != "def" {
		t.Fatalf("unset: got %q", got)
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("APP_TEST_TIMEOUT", "250ms")
	if got := EnvDuration("APP_TEST_TIMEOUT", time.Second); got != 250*time.Millisecond {
		t.Fatalf("got %v", got)
	}
	t.Setenv("APP_TEST_TIMEOUT", "nope")
	if got := EnvDuration("APP_TEST_TIMEOUT", time.Second); got != time.Second {
		t.Fatalf("malformed: got %v", got)
	}
	if got := EnvDuration("APP_TEST_MISSING", 2*time.Second); got != 2*time.Second {
		t.Fatalf("unset: got %v", got)
	}
}
