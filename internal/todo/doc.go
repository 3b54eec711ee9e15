// Package todo holds the in-memory task list and the operations on it.
//
// A List is an ordered, newest-first sequence of tasks. It is never mutated
// in place: Add, Toggle and Remove take the current list and return a new
// one, leaving the previous value untouched so callers can detect changes
// by comparing list identity.
//
// # Invariants
//
//   - Task IDs are unique within a list.
//   - Titles are trimmed and never empty.
//   - No two tasks share a title, compared case-insensitively.
//
// # Operations
//
//   - Add: trims the title, rejects empty titles (ErrEmptyTitle) and
//     case-insensitive duplicates (*DuplicateTitleError), prepends the task.
//   - Toggle: replaces the matching task with a copy whose Done is flipped.
//     Unknown IDs leave the list unchanged.
//   - Remove: drops the matching task. Unknown IDs leave the list unchanged.
//   - RemainingCount: number of tasks not done, always a fresh scan.
//
// Store wraps a List as a single state container and notifies observers
// after each transition. It is not safe for concurrent use.
//
// # Seed Files
//
// A seed file pre-populates a store at startup:
//
//	{
//	  "tasks": [
//	    {"title": "Comprar leite", "done": false},
//	    {"title": "Estudar Go", "done": true}
//	  ]
//	}
//
// Seed files are validated against an embedded JSON Schema and replayed
// through Add, so they obey the same invariants as interactive input.
package todo
