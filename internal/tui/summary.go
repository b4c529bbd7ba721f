package tui

import (
    "strings"

    "github.com/charmbracelet/bubbles/viewport"
    "github.com/charmbracelet/glamour"

    "todo-man/internal/tasks"
)

// summaryMarkdown is the markdown shown by the summary screen.
func summaryMarkdown(list []tasks.Task) string {
    var b strings.Builder
    if err := tasks.WriteMarkdown(list, &b); err != nil {
        return "error: " + err.Error()
    }
    return b.String()
}

// openSummary renders the full list through glamour into the viewport.
func (m *model) openSummary() {
    content := summaryMarkdown(m.ctrl.Tasks())
    width := m.width
    if width <= 0 { width = 80 }
    r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(max(20, width-4)))
    if err == nil {
        if s, err2 := r.Render(content); err2 == nil { content = s }
    }
    m.vp = viewport.New(width, max(3, m.height-2))
    m.vp.SetContent(content)
    m.summary = true
}
