// Package numbering drives the interactive session that creates sequentially
// numbered subdirectories under a root directory.
//
// The counter lives only in memory while the session runs. Each accepted
// name increments it and creates "<counter:05d>_<name>" under the root; the
// final value is returned to the caller for a single write back to storage.
package numbering

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/dirnum/internal/cli"
)

// Sentinel ends the session. It is compared case-sensitively against the
// trimmed input line.
const Sentinel = "exit"

// ErrCounterExhausted is returned when the counter cannot be incremented
// without overflowing.
var ErrCounterExhausted = errors.New("counter exhausted")

// Prompter reads one name per call. It returns io.EOF when no more input
// will arrive.
type Prompter interface {
	Prompt(ctx context.Context) (string, error)
}

// DirectoryCreateError reports a numbered directory that could not be created.
type DirectoryCreateError struct {
	Path string
	Err  error
}

func (e *DirectoryCreateError) Error() string {
	return fmt.Sprintf("creating %s: %v", e.Path, e.Err)
}

func (e *DirectoryCreateError) Unwrap() error { return e.Err }

// Result is the outcome of a session.
type Result struct {
	Counter int64    // value to persist
	Created []string // absolute paths created, in order
	Failed  int      // names whose directory could not be created
}

// Loop creates numbered directories under Root for each name Prompt returns.
type Loop struct {
	Root   string
	Prompt Prompter
	Out    io.Writer // confirmations and farewell
	Err    io.Writer // per-name failures
	Log    *slog.Logger
}

// FormatName returns the directory name for counter and name. Counters are
// zero-padded to at least five digits; larger counters keep all their digits.
func FormatName(counter int64, name string) string {
	return fmt.Sprintf("%05d_%s", counter, name)
}

// Run prompts until the sentinel (or end of input) and returns the final
// counter. Directory failures are reported to Err and do not stop the loop;
// the counter is not rolled back for them. A prompt error other than io.EOF
// ends the loop and is returned together with the result so far, as is
// ErrCounterExhausted.
func (l *Loop) Run(ctx context.Context, start int64) (Result, error) {
	res := Result{Counter: start}
	log := l.logger()

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		line, err := l.Prompt.Prompt(ctx)
		if errors.Is(err, io.EOF) {
			log.Debug("input closed, ending session", "counter", res.Counter)
			break
		}
		if err != nil {
			return res, fmt.Errorf("reading name: %w", err)
		}

		name := strings.TrimSpace(line)
		if name == Sentinel {
			break
		}

		if res.Counter == math.MaxInt64 {
			return res, fmt.Errorf("%w at %d", ErrCounterExhausted, res.Counter)
		}
		res.Counter++
		path, err := l.create(res.Counter, name)
		if err != nil {
			res.Failed++
			log.Debug("create failed", "counter", res.Counter, "error", err)
			fmt.Fprintln(l.Err, cli.RenderError(err))
			continue
		}
		res.Created = append(res.Created, path)
		fmt.Fprintln(l.Out, cli.RenderCreated(path))
		fmt.Fprintln(l.Out)
	}

	fmt.Fprintln(l.Out)
	fmt.Fprintln(l.Out, cli.RenderGoodbye())
	fmt.Fprintln(l.Out)
	return res, nil
}

// create makes the numbered directory directly under Root. The root itself is
// recreated if it disappeared; the numbered directory must not already exist.
func (l *Loop) create(counter int64, name string) (string, error) {
	dirName := FormatName(counter, name)
	path := filepath.Join(l.Root, dirName)

	if err := CheckName(name); err != nil {
		return "", &DirectoryCreateError{Path: path, Err: err}
	}
	if err := os.MkdirAll(l.Root, 0o755); err != nil {
		return "", &DirectoryCreateError{Path: path, Err: err}
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		return "", &DirectoryCreateError{Path: path, Err: err}
	}
	return path, nil
}

// CheckName rejects names that would not produce a single directory directly
// under the root. An empty name is fine: it yields "00001_".
func CheckName(name string) error {
	switch {
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return errors.New("name contains a path separator")
	case strings.ContainsRune(name, 0):
		return errors.New("name contains a NUL byte")
	}
	return nil
}

func (l *Loop) logger() *slog.Logger {
	if l.Log != nil {
		return l.Log
	}
	return slog.New(slog.DiscardHandler)
}
