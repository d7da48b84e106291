package grammar_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/gouri/internal/grammar"
)

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	d := grammar.NewDecoder("Hello%20World%21", grammar.Alpha)
	if d.Done() {
		t.Fatal("d.Done() = true before decoding, want false")
	}

	for i := range 3 {
		got, err := d.Decode()
		if err != nil {
			t.Fatalf("d.Decode() #%d error = %v, want nil", i, err)
		}
		if want := "Hello World!"; got != want {
			t.Errorf("d.Decode() #%d = %q, want %q", i, got, want)
		}
		if !d.Done() {
			t.Errorf("d.Done() #%d = false, want true", i)
		}
	}
}

func TestDecoder_DecodeFailure(t *testing.T) {
	t.Parallel()

	d := grammar.NewDecoder("abc!", grammar.Alpha)
	for i := range 2 {
		got, err := d.Decode()
		if !errors.Is(err, grammar.ErrIllegalCharacter) {
			t.Errorf("d.Decode() #%d error = %v, want %v", i, err, grammar.ErrIllegalCharacter)
		}
		if got != "" {
			t.Errorf("d.Decode() #%d = %q, want empty", i, got)
		}
		if d.Done() {
			t.Errorf("d.Done() #%d = true after failure, want false", i)
		}
	}
}

func TestEncoder_Encode(t *testing.T) {
	t.Parallel()

	e := grammar.NewEncoder("/a b/c?d", grammar.Path)
	for i := range 3 {
		got, err := e.Encode()
		if err != nil {
			t.Fatalf("e.Encode() #%d error = %v, want nil", i, err)
		}
		if want := "/a%20b/c%3Fd"; got != want {
			t.Errorf("e.Encode() #%d = %q, want %q", i, got, want)
		}
		if !e.Done() {
			t.Errorf("e.Done() #%d = false, want true", i)
		}
	}
}

func TestEncoder_EncodeFailure(t *testing.T) {
	t.Parallel()

	e := grammar.NewEncoder("naïve", grammar.Path)
	for i := range 2 {
		if _, err := e.Encode(); !errors.Is(err, grammar.ErrIllegalCharacter) {
			t.Errorf("e.Encode() #%d error = %v, want %v", i, err, grammar.ErrIllegalCharacter)
		}
		if e.Done() {
			t.Errorf("e.Done() #%d = true after failure, want false", i)
		}
	}
}
