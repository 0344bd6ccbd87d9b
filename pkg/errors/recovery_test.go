package errors

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSafeExecute(t *testing.T) {
	errFeature := fmt.Errorf("feature failed")

	tests := []struct {
		name      string
		fn        func() error
		wantPanic bool
		wantErr   error
		wantValue interface{}
	}{
		{
			name: "success",
			fn:   func() error { return nil },
		},
		{
			name:    "returned error passes through",
			fn:      func() error { return errFeature },
			wantErr: errFeature,
		},
		{
			name:      "string panic",
			fn:        func() error { panic("index out of range") },
			wantPanic: true,
			wantValue: "index out of range",
		},
		{
			name:      "int panic",
			fn:        func() error { panic(42) },
			wantPanic: true,
			wantValue: 42,
		},
		{
			name:      "error panic unwraps",
			fn:        func() error { panic(errFeature) },
			wantPanic: true,
			wantValue: errFeature,
			wantErr:   errFeature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SafeExecute("analysis.feature", tt.fn)

			var panicErr *PanicError
			if got := errors.As(err, &panicErr); got != tt.wantPanic {
				t.Fatalf("PanicError = %v, want %v (err = %v)", got, tt.wantPanic, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantErr)
			}
			if !tt.wantPanic {
				if tt.wantErr == nil && err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}

			if panicErr.PanicValue != tt.wantValue {
				t.Errorf("PanicValue = %v, want %v", panicErr.PanicValue, tt.wantValue)
			}
			if panicErr.Operation != "analysis.feature" {
				t.Errorf("Operation = %q", panicErr.Operation)
			}
			if panicErr.StackTrace == "" {
				t.Error("expected a stack trace")
			}
		})
	}
}

func TestRecoverKeepsPriorError(t *testing.T) {
	prior := fmt.Errorf("column 2 is constant")

	fn := func() (err error) {
		defer Recover(&err, "analysis.feature")
		err = prior
		panic("boom")
	}
	err := fn()

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("expected PanicError, got %T", err)
	}
	if !errors.Is(err, prior) {
		t.Error("prior error should stay reachable")
	}
	want := "panic in analysis.feature: boom (after: column 2 is constant)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestPanicErrorString(t *testing.T) {
	p := NewPanicError("Vote", "no neighbors")

	if p.Error() != "panic in Vote: no neighbors" {
		t.Errorf("Error() = %q", p.Error())
	}
	if s := p.String(); !strings.HasPrefix(s, p.Error()) || !strings.Contains(s, "Stack trace:") {
		t.Errorf("String() = %q", s)
	}
	if len(p.Unwrap()) != 0 {
		t.Error("a non-error panic value has nothing to unwrap")
	}
}

func TestPanicErrorZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Error().EmbedObject(NewPanicError("Vote", 7)).Send()

	out := buf.String()
	for _, want := range []string{`"error_type":"PanicError"`, `"operation":"Vote"`, `"panic_value":"7"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %s", want, out)
		}
	}
}

func BenchmarkSafeExecute(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = SafeExecute("bench", func() error { return nil })
	}
}
