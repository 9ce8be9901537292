package testutil

import (
	"net"
	"testing"
)

func TestRequireDevTools_SkipsWhenUnset(t *testing.T) {
	t.Setenv(DevToolsEnv, "")

	ran := false
	t.Run("inner", func(t *testing.T) {
		RequireDevTools(t)
		ran = true
	})
	if ran {
		t.Fatal("expected inner test to be skipped")
	}
}

func TestRequireDevTools_SkipsWhenUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	t.Setenv(DevToolsEnv, "ws://"+addr+"/devtools/browser/x")

	ran := false
	t.Run("inner", func(t *testing.T) {
		RequireDevTools(t)
		ran = true
	})
	if ran {
		t.Fatal("expected inner test to be skipped")
	}
}

func TestRequireDevTools_ReturnsURL(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	want := "ws://" + ln.Addr().String() + "/devtools/browser/x"
	t.Setenv(DevToolsEnv, want)

	if got := RequireDevTools(t); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
