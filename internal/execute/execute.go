// Package execute runs executable code blocks as external processes and
// exposes their output through a pollable handle. Nothing here blocks: the
// session loop polls while the process runs on its own.
package execute

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"presentty/internal/markdown"
)

// ErrUnsupportedLanguage is returned for code blocks in languages we
// refuse to execute.
var ErrUnsupportedLanguage = errors.New("language is not executable")

// interpreters maps executable fence languages to the binary that runs
// them.
var interpreters = map[string]string{
	"bash":  "bash",
	"sh":    "sh",
	"shell": "sh",
	"zsh":   "zsh",
	"fish":  "fish",
}

// Status is the process lifecycle as seen by pollers.
type Status int

const (
	Running Status = iota
	Success
	Failure
)

// Finished reports whether the process has exited either way.
func (s Status) Finished() bool {
	return s != Running
}

// State is a point-in-time snapshot of a running execution.
type State struct {
	Output []string
	Status Status
}

// Handle is the pollable side of one spawned execution. Output lines
// arrive on a reader goroutine; State takes a consistent snapshot.
type Handle struct {
	mu     sync.Mutex
	output []string
	status Status
}

// Execute spawns the process for a code block. The returned handle is
// polled; the call itself never waits for the process.
func Execute(code markdown.Code) (*Handle, error) {
	interpreter, ok := interpreters[code.Language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code.Language)
	}

	script, err := os.CreateTemp("", "presentty-*.sh")
	if err != nil {
		return nil, fmt.Errorf("creating script file: %w", err)
	}
	if _, err := script.WriteString(code.Contents); err != nil {
		script.Close()
		os.Remove(script.Name())
		return nil, fmt.Errorf("writing script file: %w", err)
	}
	script.Close()

	reader, writer := io.Pipe()
	cmd := exec.Command(interpreter, script.Name())
	cmd.Stdout = writer
	cmd.Stderr = writer
	if err := cmd.Start(); err != nil {
		os.Remove(script.Name())
		return nil, fmt.Errorf("starting %s: %w", interpreter, err)
	}

	handle := &Handle{}
	outputDone := make(chan struct{})
	go func() {
		handle.readOutput(reader)
		close(outputDone)
	}()
	go func() {
		err := cmd.Wait()
		writer.Close()
		os.Remove(script.Name())
		// The status flips to finished only after the last output line has
		// been captured, so a poll that sees a final status sees the full
		// output too.
		<-outputDone
		handle.finish(err == nil)
	}()
	return handle, nil
}

// State snapshots the output captured so far and the process status.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	output := make([]string, len(h.output))
	copy(output, h.output)
	return State{Output: output, Status: h.status}
}

func (h *Handle) readOutput(reader io.Reader) {
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		h.mu.Lock()
		h.output = append(h.output, scanner.Text())
		h.mu.Unlock()
	}
}

func (h *Handle) finish(success bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if success {
		h.status = Success
	} else {
		h.status = Failure
	}
}
