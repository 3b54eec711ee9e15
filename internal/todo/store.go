package todo

// Action names a store transition.
type Action string

const (
	ActionAdd    Action = "add"
	ActionToggle Action = "toggle"
	ActionRemove Action = "remove"
)

// Change describes a completed store transition.
type Change struct {
	Action    Action
	Task      Task // Task after the transition (before, for remove)
	Previous  List
	Current   List
	Remaining int
}

// Store is the single state container for a task list.
// It is not safe for concurrent use.
type Store struct {
	list      List
	ids       IDSource
	observers []func(Change)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDSource sets the ID source used by Add.
func WithIDSource(ids IDSource) StoreOption {
	return func(s *Store) {
		s.ids = ids
	}
}

// NewStore creates an empty store with UUIDv7 IDs.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		list: List{},
		ids:  UUIDSource{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to be called after every transition that
// replaced the list. No-op toggles and removes do not notify.
func (s *Store) OnChange(fn func(Change)) {
	if fn == nil {
		return
	}
	s.observers = append(s.observers, fn)
}

// List returns the current list. Callers must not modify it.
func (s *Store) List() List {
	return s.list
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.list)
}

// Remaining returns the number of tasks not done.
func (s *Store) Remaining() int {
	return RemainingCount(s.list)
}

// Find returns the task with id.
func (s *Store) Find(id string) (Task, bool) {
	idx := IndexOf(s.list, id)
	if idx < 0 {
		return Task{}, false
	}
	return s.list[idx], true
}

// Add creates a task from raw and puts it at the front of the list.
// It returns ErrEmptyTitle or a *DuplicateTitleError without touching
// the list.
func (s *Store) Add(raw string) (Task, error) {
	next, task, err := Add(s.list, raw, s.ids)
	if err != nil {
		return Task{}, err
	}
	s.commit(ActionAdd, task, next)
	return task, nil
}

// Toggle flips the Done flag of the task with id.
// It reports whether a task was found.
func (s *Store) Toggle(id string) bool {
	idx := IndexOf(s.list, id)
	if idx < 0 {
		return false
	}
	next := Toggle(s.list, id)
	s.commit(ActionToggle, next[idx], next)
	return true
}

// Remove deletes the task with id.
// It reports whether a task was found.
func (s *Store) Remove(id string) bool {
	idx := IndexOf(s.list, id)
	if idx < 0 {
		return false
	}
	removed := s.list[idx]
	s.commit(ActionRemove, removed, Remove(s.list, id))
	return true
}

func (s *Store) commit(action Action, task Task, next List) {
	prev := s.list
	s.list = next
	if len(s.observers) == 0 {
		return
	}
	change := Change{
		Action:    action,
		Task:      task,
		Previous:  prev,
		Current:   next,
		Remaining: RemainingCount(next),
	}
	for _, fn := range s.observers {
		fn(change)
	}
}
