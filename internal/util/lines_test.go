package util

import (
	"errors"
	"strings"
	"testing"
)

func TestEachLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single without newline", "hello", []string{"hello"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			err := EachLine(strings.NewReader(tt.input), func(line string) error {
				got = append(got, line)
				return nil
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEachLine_LongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	var got []string
	err := EachLine(strings.NewReader(long+"\nnext\n"), func(line string) error {
		got = append(got, line)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || len(got[0]) != len(long) || got[1] != "next" {
		t.Errorf("long line not delivered intact: %d lines", len(got))
	}
}

func TestEachLine_CallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := EachLine(strings.NewReader("a\nb\nc\n"), func(string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
