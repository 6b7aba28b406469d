// Package picker hands the flattened path list to an interactive
// multi-select and returns the chosen paths.
package picker

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/quantmind-br/gitpick/internal/domain"
	"github.com/quantmind-br/gitpick/internal/utils"
)

const (
	// DefaultCommand is the external picker binary used when none is configured
	DefaultCommand = "fzf"

	// DefaultHeight is the terminal height handed to the external picker
	DefaultHeight = "40%"
)

// commandArgs is the fixed argument list for the external picker. The
// ctrl-z binding is ignored so the child is never stopped under the
// parent; --exit-0 and --select-1 keep trivial lists non-interactive.
func commandArgs(height string) []string {
	return []string{
		"-m",
		"--bind=ctrl-z:ignore",
		"--exit-0",
		"--height=" + height,
		"--inline-info",
		"--no-sort",
		"--reverse",
		"--select-1",
	}
}

// FzfPicker selects paths through an external fzf-compatible binary
type FzfPicker struct {
	command string
	height  string
	stderr  io.Writer
	log     *utils.Logger
}

var _ domain.Picker = (*FzfPicker)(nil)

// FzfOptions contains options for creating an FzfPicker
type FzfOptions struct {
	Command string
	Height  string
	Stderr  io.Writer
	Logger  *utils.Logger
}

// DefaultFzfOptions returns default picker options
func DefaultFzfOptions() FzfOptions {
	return FzfOptions{
		Command: DefaultCommand,
		Height:  DefaultHeight,
	}
}

// NewFzfPicker creates a picker that spawns an external binary
func NewFzfPicker(opts FzfOptions) *FzfPicker {
	defaults := DefaultFzfOptions()
	if opts.Command == "" {
		opts.Command = defaults.Command
	}
	if opts.Height == "" {
		opts.Height = defaults.Height
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	log := opts.Logger
	if log == nil {
		log = utils.NewDefaultLogger()
	}

	return &FzfPicker{
		command: opts.Command,
		height:  opts.Height,
		stderr:  opts.Stderr,
		log:     log.WithComponent("picker"),
	}
}

// Select feeds one item per line to the picker and returns the lines the
// user chose. The picker draws on the terminal through inherited stderr;
// its stdout is captured concurrently while it runs. Stdin must be closed
// before waiting or the child never sees end of input.
func (p *FzfPicker) Select(ctx context.Context, items []string) ([]string, error) {
	p.log.Debug().Str("command", p.command).Int("items", len(items)).Msg("Launching picker")

	cmd := exec.CommandContext(ctx, p.command, commandArgs(p.height)...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = p.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, domain.NewIOError(err)
	}

	if err := cmd.Start(); err != nil {
		return nil, domain.NewIOError(err)
	}

	if err := feedItems(stdin, items); err != nil {
		_ = cmd.Wait()
		return nil, domain.NewIOError(err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// -1 means the child died to a signal, not an exit code
			if exitErr.ExitCode() == -1 {
				return nil, domain.ErrPickerInterrupted
			}
			return nil, domain.NewOtherError(fmt.Sprintf("a file was not chosen: %s", exitErr))
		}
		return nil, domain.NewIOError(err)
	}

	chosen := splitSelection(out.String())
	p.log.Debug().Int("chosen", len(chosen)).Msg("Picker finished")
	return chosen, nil
}

// feedItems writes the items one per line and closes the pipe
func feedItems(stdin io.WriteCloser, items []string) error {
	writer := bufio.NewWriter(stdin)
	for _, item := range items {
		if _, err := fmt.Fprintln(writer, item); err != nil {
			_ = stdin.Close()
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		_ = stdin.Close()
		return err
	}
	return stdin.Close()
}

// splitSelection turns raw picker output into chosen paths, one per line.
// Empty output is an empty choice, not a choice of the empty string.
func splitSelection(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}
