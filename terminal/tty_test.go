package terminal

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"
)

func TestTTYNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tty := NewTTY(f)
	if tty.IsTerminal() {
		t.Fatal("Expected regular file not to be a terminal")
	}

	err = tty.EnableRawMode()
	if !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Expected ErrNotTerminal, got %v", err)
	}
	if tty.Raw() {
		t.Error("Expected raw mode off after failed enable")
	}

	// Disable without a successful enable is a no-op
	if err := tty.DisableRawMode(); err != nil {
		t.Errorf("Expected nil from DisableRawMode, got %v", err)
	}
	if err := tty.DisableRawMode(); err != nil {
		t.Errorf("Expected idempotent DisableRawMode, got %v", err)
	}
}

func TestBackendPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	b := NewBackend(r)

	// Nothing written yet
	data, err := b.Read(20 * time.Millisecond)
	if err != nil || data != nil {
		t.Fatalf("Expected timeout (nil, nil), got (%q, %v)", data, err)
	}

	if _, err := w.Write([]byte("kq")); err != nil {
		t.Fatal(err)
	}
	data, err = b.Read(time.Second)
	if err != nil {
		t.Fatalf("Expected data, got error %v", err)
	}
	if string(data) != "kq" {
		t.Errorf("Expected %q, got %q", "kq", data)
	}

	w.Close()
	_, err = b.Read(-1)
	if err != io.EOF {
		t.Errorf("Expected io.EOF after writer closed, got %v", err)
	}
}

func TestBackendFeedsReader(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	reader := NewReader(NewBackend(r))
	go func() {
		w.Write([]byte{0x1b}) // lone escape, resolved by timeout
		time.Sleep(3 * escapeTimeout)
		w.Write([]byte(" "))
		w.Close()
	}()

	ev, err := reader.ReadEvent()
	if err != nil || ev.Key != KeyEscape {
		t.Fatalf("Expected KeyEscape, got %v (%v)", ev.Key, err)
	}
	ev, err = reader.ReadEvent()
	if err != nil || ev.Key != KeySpace {
		t.Fatalf("Expected KeySpace, got %v (%v)", ev.Key, err)
	}
	if _, err = reader.ReadEvent(); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}
