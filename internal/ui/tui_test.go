package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tarefas/internal/todo"
)

func newTestModel(t *testing.T) (*Model, *todo.Store) {
	t.Helper()
	store := todo.NewStore(todo.WithIDSource(todo.NewCounterSource("t")))
	m := NewModel(store, WithHeader("Bem-vindo", "Teste"))
	return m, store
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func pressRune(m *Model, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

func addTask(t *testing.T, m *Model, title string) {
	t.Helper()
	typeText(m, title)
	press(m, tea.KeyEnter)
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestInitialView(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()

	for _, want := range []string{"Bem-vindo", "Teste", "0 tarefas ativas", todo.EmptyMessage, "precisa ser feito?"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if m.Init() == nil {
		t.Error("Init should start the cursor blink")
	}
}

func TestAddFromInput(t *testing.T) {
	m, store := newTestModel(t)

	addTask(t, m, "  Buy milk ")
	if store.Len() != 1 {
		t.Fatalf("store length: got %d, want 1", store.Len())
	}
	if got := store.List()[0].Title; got != "Buy milk" {
		t.Errorf("title: got %q, want %q", got, "Buy milk")
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}

	view := m.View()
	if !strings.Contains(view, "1 tarefa ativa") {
		t.Errorf("view missing singular counter:\n%s", view)
	}
	if !strings.Contains(view, "[ ] Buy milk") {
		t.Errorf("view missing task line:\n%s", view)
	}
	if strings.Contains(view, todo.EmptyMessage) {
		t.Error("empty message should be hidden")
	}

	addTask(t, m, "Walk dog")
	lines := strings.Split(m.View(), "\n")
	dog, milk := -1, -1
	for i, l := range lines {
		if strings.Contains(l, "Walk dog") {
			dog = i
		}
		if strings.Contains(l, "Buy milk") {
			milk = i
		}
	}
	if dog < 0 || milk < 0 || dog > milk {
		t.Errorf("newest task should be listed first (dog=%d milk=%d)", dog, milk)
	}
	if !strings.Contains(m.View(), "2 tarefas ativas") {
		t.Error("counter should read 2 tarefas ativas")
	}
}

func TestEmptySubmitIsIgnored(t *testing.T) {
	m, store := newTestModel(t)

	typeText(m, "   ")
	press(m, tea.KeyEnter)

	if store.Len() != 0 {
		t.Fatalf("store length: got %d, want 0", store.Len())
	}
	if m.alert != nil {
		t.Error("empty submit must not open the alert")
	}
}

func TestDuplicateOpensBlockingAlert(t *testing.T) {
	m, store := newTestModel(t)
	addTask(t, m, "Buy milk")

	typeText(m, "BUY MILK")
	press(m, tea.KeyEnter)

	if store.Len() != 1 {
		t.Fatalf("duplicate must not be added, length %d", store.Len())
	}
	if m.alert == nil {
		t.Fatal("alert should be open")
	}
	if m.input.Value() != "BUY MILK" {
		t.Errorf("input should be kept, got %q", m.input.Value())
	}

	view := m.View()
	for _, want := range []string{todo.DuplicateAlertTitle, todo.DuplicateAlertBody} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	// Keys other than the dismiss keys are swallowed.
	typeText(m, "zzz")
	pressRune(m, 'q')
	if m.alert == nil {
		t.Fatal("alert should stay open")
	}
	if m.input.Value() != "BUY MILK" {
		t.Errorf("input changed while alert open: %q", m.input.Value())
	}

	press(m, tea.KeyEsc)
	if m.alert != nil {
		t.Fatal("esc should dismiss the alert")
	}
	if m.focus != focusInput {
		t.Error("focus should stay on the input")
	}
}

func TestToggleAndRemoveFromList(t *testing.T) {
	m, store := newTestModel(t)
	addTask(t, m, "A")
	addTask(t, m, "B")
	addTask(t, m, "C")

	press(m, tea.KeyTab)
	if m.focus != focusList {
		t.Fatal("tab should focus the list")
	}
	if m.cursor != 0 {
		t.Fatalf("cursor: got %d, want 0", m.cursor)
	}

	pressRune(m, 'j')
	pressRune(m, 'x')
	b, _ := store.Find("t2")
	if !b.Done {
		t.Fatalf("task B should be done: %+v", store.List())
	}
	view := m.View()
	if !strings.Contains(view, "[x] B") {
		t.Errorf("view should mark B done:\n%s", view)
	}
	if !strings.Contains(view, "2 tarefas ativas") {
		t.Errorf("counter should drop to 2:\n%s", view)
	}

	pressRune(m, 'x')
	if b, _ := store.Find("t2"); b.Done {
		t.Error("second toggle should restore B")
	}

	press(m, tea.KeyDown)
	pressRune(m, 'd')
	if _, ok := store.Find("t1"); ok {
		t.Error("task A should be removed")
	}
	if m.cursor != 1 {
		t.Errorf("cursor should clamp to last task, got %d", m.cursor)
	}

	pressRune(m, 'd')
	if cmd := pressRune(m, 'd'); cmd == nil {
		t.Error("emptying the list should return the input focus command")
	}
	if store.Len() != 0 {
		t.Fatalf("all tasks should be removed, left %d", store.Len())
	}
	if m.focus != focusInput {
		t.Error("focus should return to the input when the list empties")
	}
	if !strings.Contains(m.View(), todo.EmptyMessage) {
		t.Error("empty state should be shown")
	}
}

func TestLongTitlesAreNotTruncated(t *testing.T) {
	m, store := newTestModel(t)
	prefix := strings.Repeat("a", 300)

	addTask(t, m, prefix+"X")
	addTask(t, m, prefix+"Y")

	if m.alert != nil {
		t.Fatal("titles differing after the first 300 characters are not duplicates")
	}
	if store.Len() != 2 {
		t.Fatalf("store length: got %d, want 2", store.Len())
	}
	if got := store.List()[0].Title; got != prefix+"Y" {
		t.Errorf("stored title has length %d, want %d", len(got), len(prefix)+1)
	}
}

func TestListNavigationBounds(t *testing.T) {
	m, _ := newTestModel(t)
	addTask(t, m, "A")
	addTask(t, m, "B")
	press(m, tea.KeyTab)

	pressRune(m, 'G')
	if m.cursor != 1 {
		t.Errorf("end: got %d, want 1", m.cursor)
	}
	press(m, tea.KeyDown)
	if m.cursor != 1 {
		t.Errorf("cursor moved past the end: %d", m.cursor)
	}
	pressRune(m, 'g')
	if m.cursor != 0 {
		t.Errorf("home: got %d, want 0", m.cursor)
	}
	press(m, tea.KeyUp)
	if m.focus != focusInput {
		t.Error("up from the first task should focus the input")
	}
}

func TestTabWithEmptyListKeepsInputFocus(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyTab)
	if m.focus != focusInput {
		t.Error("list cannot take focus while empty")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)

	pressRune(m, 'q')
	if m.input.Value() != "q" {
		t.Errorf("input: got %q, want q", m.input.Value())
	}
	press(m, tea.KeyEnter)
	press(m, tea.KeyTab)
	if cmd := pressRune(m, 'q'); !isQuit(cmd) {
		t.Error("q in the list should quit")
	}
	if cmd := press(m, tea.KeyCtrlC); !isQuit(cmd) {
		t.Error("ctrl+c should quit")
	}
}

func TestHelpScreen(t *testing.T) {
	m, _ := newTestModel(t)
	addTask(t, m, "A")
	press(m, tea.KeyTab)
	pressRune(m, '?')
	if !strings.Contains(m.View(), "Atalhos") {
		t.Fatal("help screen should be shown")
	}
	pressRune(m, '?')
	if strings.Contains(m.View(), "Atalhos") {
		t.Error("help screen should close")
	}
}

func TestWindowResize(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if m.input.Width != 70 {
		t.Errorf("input width: got %d, want 70", m.input.Width)
	}
}

func TestExampleWalkthrough(t *testing.T) {
	m, store := newTestModel(t)

	addTask(t, m, "Buy milk")
	if !strings.Contains(m.View(), "1 tarefa ativa") {
		t.Fatal("count should be 1")
	}

	typeText(m, "buy milk")
	press(m, tea.KeyEnter)
	if m.alert == nil || store.Len() != 1 {
		t.Fatal("duplicate should be rejected with an alert")
	}
	press(m, tea.KeyEnter)

	press(m, tea.KeyTab)
	pressRune(m, ' ')
	if !strings.Contains(m.View(), "0 tarefas ativas") {
		t.Fatalf("count should be 0 after toggle:\n%s", m.View())
	}

	pressRune(m, 'd')
	if store.Len() != 0 {
		t.Fatal("list should be empty")
	}
	view := m.View()
	if !strings.Contains(view, "0 tarefas ativas") || !strings.Contains(view, todo.EmptyMessage) {
		t.Errorf("unexpected final view:\n%s", view)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
}
