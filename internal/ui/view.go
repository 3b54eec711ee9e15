package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tarefas/internal/todo"
)

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	counter  lipgloss.Style
	cursor   lipgloss.Style
	task     lipgloss.Style
	taskDone lipgloss.Style
	empty    lipgloss.Style
	alertBox lipgloss.Style
	alertHdr lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
		counter:  lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		task:     lipgloss.NewStyle(),
		taskDone: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("245")),
		empty:    lipgloss.NewStyle().Faint(true).Italic(true),
		alertBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("204")).
			Padding(0, 2),
		alertHdr: lipgloss.NewStyle().Bold(true),
		help:     lipgloss.NewStyle().Faint(true),
	}
}

func (m *Model) View() string {
	var b strings.Builder
	m.writeHeader(&b)

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.alert != nil {
		m.writeAlert(&b)
		return b.String()
	}

	list := m.store.List()
	b.WriteString(m.styles.counter.Render(todo.CountLabel(todo.RemainingCount(list))))
	b.WriteString("\n\n")

	m.writeList(&b, list)
	m.writeFooter(&b)
	return b.String()
}

func (m *Model) writeHeader(b *strings.Builder) {
	if m.cfg.title != "" {
		b.WriteString(m.styles.title.Render(m.cfg.title))
		b.WriteString("\n")
	}
	if m.cfg.subtitle != "" {
		b.WriteString(m.styles.subtitle.Render(m.cfg.subtitle))
		b.WriteString("\n")
	}
	if m.cfg.title != "" || m.cfg.subtitle != "" {
		b.WriteString("\n")
	}
}

func (m *Model) writeList(b *strings.Builder, list todo.List) {
	if len(list) == 0 {
		b.WriteString(m.styles.empty.Render(todo.EmptyMessage))
		b.WriteString("\n\n")
		return
	}

	for i, task := range list {
		marker := "  "
		if m.focus == focusList && i == m.cursor {
			marker = m.styles.cursor.Render("❯ ")
		}
		b.WriteString(marker)
		b.WriteString(m.formatTask(task))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *Model) formatTask(t todo.Task) string {
	if t.Done {
		return "[x] " + m.styles.taskDone.Render(t.Title)
	}
	return "[ ] " + m.styles.task.Render(t.Title)
}

func (m *Model) writeAlert(b *strings.Builder) {
	body := m.styles.alertHdr.Render(m.alert.title) + "\n\n" +
		m.alert.body + "\n\n" +
		"[ OK ] enter"
	b.WriteString(m.styles.alertBox.Render(body))
	b.WriteString("\n")
}

func (m *Model) writeFooter(b *strings.Builder) {
	var hint string
	if m.focus == focusInput {
		hint = "enter adicionar • tab lista • ? ajuda • ctrl+c sair"
	} else {
		hint = "espaço concluir • d remover • tab digitar • ? ajuda • q sair"
	}
	b.WriteString(m.styles.help.Render(hint))
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Atalhos\n\n")
	b.WriteString("  enter          Adicionar tarefa (campo de texto)\n")
	b.WriteString("  tab            Alternar entre campo de texto e lista\n")
	b.WriteString("  ↑/k ↓/j        Mover na lista\n")
	b.WriteString("  espaço, x      Marcar ou desmarcar como concluída\n")
	b.WriteString("  d, delete      Remover tarefa\n")
	b.WriteString("  a, i           Voltar ao campo de texto\n")
	b.WriteString("  ?              Mostrar ou esconder esta ajuda\n")
	b.WriteString("  q              Sair (na lista)\n")
	b.WriteString("  ctrl+c         Sair\n\n")
}
