// Package format runs generated source through an external pretty-printer.
// Formatting is best effort: a formatter failure falls back to the raw text
// so generated content is never dropped.
package format

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// Formatter pretty-prints generated source text.
type Formatter interface {
	Format(source string) (string, error)
}

// Passthrough returns the input unchanged. Used when no formatter is
// configured.
type Passthrough struct{}

// Format implements Formatter.
func (Passthrough) Format(source string) (string, error) {
	return source, nil
}

// Prettier shells out to a prettier-compatible binary, feeding source on
// stdin and reading the formatted result from stdout. Args are forwarded
// opaquely from configuration.
type Prettier struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// NewPrettier creates a Prettier formatter with a default JSX parser flag
// when no args are configured.
func NewPrettier(command string, args []string) *Prettier {
	if len(args) == 0 {
		args = []string{"--parser", "babel"}
	}
	return &Prettier{Command: command, Args: args, Timeout: 30 * time.Second}
}

// Format implements Formatter.
func (p *Prettier) Format(source string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	cmd.Stdin = bytes.NewBufferString(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("formatter %s failed: %w (%s)", p.Command, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.String(), nil
}

// Apply formats source and falls back to the unformatted text on failure,
// logging a warning. Never returns an empty result for non-empty input.
func Apply(f Formatter, source string, logger *slog.Logger) string {
	if f == nil {
		return source
	}
	formatted, err := f.Format(source)
	if err != nil {
		if logger != nil {
			logger.Warn("formatter failed, keeping unformatted output", "error", err)
		}
		return source
	}
	return formatted
}
