// Package batch applies line-oriented task commands to a store.
//
// Each input line holds one command:
//
//	add <title>      add a task (duplicates print the alert text)
//	toggle <ref>     flip a task between active and done
//	remove <ref>     remove a task (alias: rm)
//	list             print the current list
//	count            print the remaining-task counter
//
// A <ref> is either a 1-based position in the current list or a task ID.
// Blank lines and lines starting with # are skipped. Lines may be up to
// MaxLineSize bytes long. Once the input is consumed the final list and
// counter are printed.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tarefas/internal/todo"
)

// MaxLineSize is the longest command line Run accepts.
const MaxLineSize = 1 << 20

// ErrUnknownCommand is wrapped by LineError for unrecognized commands.
var ErrUnknownCommand = errors.New("unknown command")

// ErrMissingRef is wrapped by LineError when toggle or remove has no argument.
var ErrMissingRef = errors.New("missing task reference")

// LineError reports a failure on a specific input line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Runner executes commands against a store.
type Runner struct {
	store  *todo.Store
	out    io.Writer
	logger *log.Logger
}

// New creates a runner writing its output to out. A nil logger discards.
func New(store *todo.Store, out io.Writer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{store: store, out: out, logger: logger}
}

// Run reads commands from r until EOF, an invalid command or ctx is done.
func Run(ctx context.Context, store *todo.Store, r io.Reader, w io.Writer, logger *log.Logger) error {
	return New(store, w, logger).Run(ctx, r)
}

// Run reads commands from r until EOF, an invalid command or ctx is done,
// then prints the final list and counter.
func (b *Runner) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := b.Exec(text); err != nil {
			return &LineError{Line: line, Text: text, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}

	b.printList()
	b.printCount()
	return nil
}

// Exec runs a single command line.
func (b *Runner) Exec(text string) error {
	name, arg := splitCommand(text)
	switch strings.ToLower(name) {
	case "add":
		return b.add(arg)
	case "toggle":
		return b.withRef(arg, b.store.Toggle, todo.ActionToggle)
	case "remove", "rm":
		return b.withRef(arg, b.store.Remove, todo.ActionRemove)
	case "list", "ls":
		b.printList()
		return nil
	case "count":
		b.printCount()
		return nil
	default:
		return ErrUnknownCommand
	}
}

func (b *Runner) add(arg string) error {
	_, err := b.store.Add(arg)
	switch {
	case err == nil, errors.Is(err, todo.ErrEmptyTitle):
		return nil
	case errors.Is(err, todo.ErrDuplicateTitle):
		b.logger.Info("duplicate title rejected", "title", todo.NormalizeTitle(arg))
		fmt.Fprintf(b.out, "%s: %s\n", todo.DuplicateAlertTitle, todo.DuplicateAlertBody)
		return nil
	default:
		return err
	}
}

func (b *Runner) withRef(ref string, apply func(id string) bool, action todo.Action) error {
	if ref == "" {
		return ErrMissingRef
	}
	id := b.Resolve(ref)
	if !apply(id) {
		b.logger.Debug("unknown task", "action", action, "ref", ref)
	}
	return nil
}

// Resolve maps a reference to a task ID. Positions out of range and
// unknown IDs are returned unchanged so the store treats them as no-ops.
func (b *Runner) Resolve(ref string) string {
	if n, err := strconv.Atoi(ref); err == nil {
		list := b.store.List()
		if n >= 1 && n <= len(list) {
			return list[n-1].ID
		}
	}
	return ref
}

func (b *Runner) printList() {
	list := b.store.List()
	if len(list) == 0 {
		fmt.Fprintln(b.out, todo.EmptyMessage)
		return
	}
	for i, t := range list {
		fmt.Fprintf(b.out, "%d. %s\n", i+1, FormatTask(t))
	}
}

func (b *Runner) printCount() {
	fmt.Fprintln(b.out, todo.CountLabel(b.store.Remaining()))
}

// FormatTask renders a task as a checkbox line.
func FormatTask(t todo.Task) string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}
	return fmt.Sprintf("%s %s (%s)", box, t.Title, t.ID)
}

func splitCommand(text string) (string, string) {
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i:])
}
