package core

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func stubCrash(t *testing.T) (*syncBuffer, chan int) {
	t.Helper()
	out := &syncBuffer{}
	codes := make(chan int, 1)
	prevOut, prevExit := crashOut, crashExit
	crashOut = out
	crashExit = func(code int) { codes <- code }
	t.Cleanup(func() {
		crashOut, crashExit = prevOut, prevExit
		SetCrashRestore(nil)
	})
	return out, codes
}

func TestHandleCrashNil(t *testing.T) {
	out, codes := stubCrash(t)
	HandleCrash(nil)
	select {
	case <-codes:
		t.Fatal("nil recover value must not exit")
	default:
	}
	if out.String() != "" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestGoRecoversAndRestores(t *testing.T) {
	out, codes := stubCrash(t)
	restored := 0
	SetCrashRestore(func() { restored++ })

	Go(func() { panic("boom") })

	if code := <-codes; code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if restored != 1 {
		t.Errorf("restore called %d times", restored)
	}
	if !strings.Contains(out.String(), "WINHOP CRASHED: boom") || !strings.Contains(out.String(), "Stack Trace:") {
		t.Errorf("report = %q", out.String())
	}

	// The restore hook is consumed by the first crash
	HandleCrash("again")
	<-codes
	if restored != 1 {
		t.Error("restore must run at most once")
	}
}
