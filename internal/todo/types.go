package todo

import (
	"errors"
	"fmt"
	"strings"
)

// Task represents a single to-do entry.
type Task struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// IsZero returns true if the task is empty (has no ID).
func (t Task) IsZero() bool {
	return t.ID == ""
}

// List is an ordered, newest-first sequence of tasks.
type List []Task

// Messages shown to the user.
const (
	DuplicateAlertTitle = "Tarefa já existe"
	DuplicateAlertBody  = "Você já adicionou essa tarefa."
	EmptyMessage        = "Nenhuma tarefa ainda. Adicione a primeira!"
)

// ErrEmptyTitle is returned by Add when the trimmed title is empty.
var ErrEmptyTitle = errors.New("task title is empty")

// ErrDuplicateTitle matches any *DuplicateTitleError via errors.Is.
var ErrDuplicateTitle = errors.New("task title already exists")

// DuplicateTitleError reports an Add rejected because another task already
// has the same title, ignoring case.
type DuplicateTitleError struct {
	Title    string // Trimmed title that was submitted
	Existing Task   // Task that already holds the title
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("task %q already exists as %q", e.Title, e.Existing.Title)
}

// Is reports whether target is ErrDuplicateTitle.
func (e *DuplicateTitleError) Is(target error) bool {
	return target == ErrDuplicateTitle
}

// NormalizeTitle trims surrounding whitespace from a raw title.
func NormalizeTitle(raw string) string {
	return strings.TrimSpace(raw)
}

// FindTitle returns the task whose title equals title ignoring case.
func FindTitle(list List, title string) (Task, bool) {
	for _, t := range list {
		if strings.EqualFold(t.Title, title) {
			return t, true
		}
	}
	return Task{}, false
}

// IndexOf returns the position of the task with id, or -1.
func IndexOf(list List, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// Add validates raw and returns a new list with the created task in front.
// On error the original list is returned unchanged.
func Add(list List, raw string, ids IDSource) (List, Task, error) {
	title := NormalizeTitle(raw)
	if title == "" {
		return list, Task{}, ErrEmptyTitle
	}
	if existing, ok := FindTitle(list, title); ok {
		return list, Task{}, &DuplicateTitleError{Title: title, Existing: existing}
	}

	task := Task{ID: ids.NextID(), Title: title, Done: false}

	next := make(List, 0, len(list)+1)
	next = append(next, task)
	next = append(next, list...)
	return next, task, nil
}

// Toggle returns a new list with the Done flag of the task with id flipped.
// If no task matches, list is returned as is.
func Toggle(list List, id string) List {
	idx := IndexOf(list, id)
	if idx < 0 {
		return list
	}

	next := make(List, len(list))
	copy(next, list)
	next[idx] = Task{ID: list[idx].ID, Title: list[idx].Title, Done: !list[idx].Done}
	return next
}

// Remove returns a new list without the task with id.
// If no task matches, list is returned as is.
func Remove(list List, id string) List {
	idx := IndexOf(list, id)
	if idx < 0 {
		return list
	}

	next := make(List, 0, len(list)-1)
	next = append(next, list[:idx]...)
	next = append(next, list[idx+1:]...)
	return next
}

// RemainingCount returns the number of tasks that are not done.
func RemainingCount(list List) int {
	count := 0
	for _, t := range list {
		if !t.Done {
			count++
		}
	}
	return count
}

// CountLabel renders the remaining-task counter line.
func CountLabel(n int) string {
	if n == 1 {
		return fmt.Sprintf("%d tarefa ativa", n)
	}
	return fmt.Sprintf("%d tarefas ativas", n)
}
