package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("x"), 1},
		{"validation", ValidationError("bad").Build(), 2},
		{"input", InputError("missing").Build(), 2},
		{"config", ConfigError("bad").Build(), 7},
		{"typeexpr", TypeExprError("bad").Build(), 3},
		{"store", StoreError("bad").Build(), 11},
		{"internal", NewError(CategoryInternal, "bad").Fatal().Build(), 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tc.err); got != tc.want {
				t.Errorf("ExitCodeFor = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)
	adapter.stderr = &stderr
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("configuration file not found").WithContext("path", "x.yaml").Build())

	if code != 7 {
		t.Errorf("expected exit code 7, got %d", code)
	}
	if !strings.Contains(stderr.String(), "configuration file not found") {
		t.Errorf("stderr missing message: %q", stderr.String())
	}
	if !strings.Contains(logs.String(), "category=config") {
		t.Errorf("expected fatal error to be logged with category, got %q", logs.String())
	}
}

func TestCLIErrorAdapter_FormatInternal(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	loud := NewCLIErrorAdapter(true, nil)
	err := NewError(CategoryInternal, "boom").Fatal().Build()

	if got := quiet.FormatError(err); got != "Internal error occurred (use -v for details)" {
		t.Errorf("unexpected quiet format %q", got)
	}
	if got := loud.FormatError(err); !strings.Contains(got, "boom") {
		t.Errorf("expected verbose format to include message, got %q", got)
	}
}
