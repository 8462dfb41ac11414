package sink

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
)

// ErrNoCommand is returned when a CommandSink is created without a display command.
var ErrNoCommand = errors.New("display command is not configured")

// Runner executes argv. It exists so tests can observe invocations.
type Runner func(ctx context.Context, argv []string) error

// CommandSink runs an external display command for every payload.
//
// The sanitized payload is appended as the final argument. The empty state
// runs the command with no payload argument. Notices use the notice command
// when one is configured, and the display command otherwise.
type CommandSink struct {
	display []string
	notice  []string
	run     Runner
}

// CommandOption configures a CommandSink.
type CommandOption func(*CommandSink)

// WithNoticeCommand sets the command used for Notice payloads.
func WithNoticeCommand(argv []string) CommandOption {
	return func(s *CommandSink) {
		s.notice = slices.Clone(argv)
	}
}

// WithRunner replaces the function that executes commands.
func WithRunner(run Runner) CommandOption {
	return func(s *CommandSink) {
		if run != nil {
			s.run = run
		}
	}
}

// NewCommandSink creates a CommandSink for the given display command.
func NewCommandSink(display []string, opts ...CommandOption) (*CommandSink, error) {
	if len(display) == 0 || display[0] == "" {
		return nil, ErrNoCommand
	}
	s := &CommandSink{
		display: slices.Clone(display),
		run:     execRun,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Show implements Sink.
func (s *CommandSink) Show(ctx context.Context, p Payload) error {
	text, err := Render(p)
	if err != nil {
		return err
	}

	argv := s.display
	if p.Kind() == KindNotice && len(s.notice) > 0 && s.notice[0] != "" {
		argv = s.notice
	}
	argv = slices.Clone(argv)
	if p.Kind() != KindEmpty {
		argv = append(argv, Sanitize(text))
	}

	if err := s.run(ctx, argv); err != nil {
		return fmt.Errorf("failed to run display command %q: %w", argv[0], err)
	}
	return nil
}

func execRun(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // argv comes from the user's configuration
	out, err := cmd.CombinedOutput()
	if err != nil {
		if len(out) > 0 {
			return fmt.Errorf("%w: %s", err, out)
		}
		return err
	}
	return nil
}
