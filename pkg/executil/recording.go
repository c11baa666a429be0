package executil

import (
	"context"
	"io"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Env  []string
	Cmd  string
	Args []string
}

// RecordingExecutor captures commands for testing.
// Configure Outputs and Errors maps to control return values.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Outputs maps command names to their output.
	// Key is the command name (e.g., "sh").
	Outputs map[string][]byte

	// Errors maps command names to their error.
	Errors map[string]error
}

// Run records the command and returns configured output/error.
func (e *RecordingExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.record(nil, cmd, args...)
}

// RunStream records the command and writes configured output to stdout.
func (e *RecordingExecutor) RunStream(ctx context.Context, env []string, stdout, stderr io.Writer, cmd string, args ...string) error {
	out, err := e.record(env, cmd, args...)
	if stdout != nil && len(out) > 0 {
		_, _ = stdout.Write(out)
	}
	return err
}

// Recorded returns a snapshot of the recorded commands.
func (e *RecordingExecutor) Recorded() []RecordedCommand {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]RecordedCommand, len(e.Commands))
	copy(out, e.Commands)
	return out
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}

func (e *RecordingExecutor) record(env []string, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{
		Env:  env,
		Cmd:  cmd,
		Args: args,
	})

	var out []byte
	var err error

	if e.Outputs != nil {
		out = e.Outputs[cmd]
	}
	if e.Errors != nil {
		err = e.Errors[cmd]
	}

	return out, err
}
