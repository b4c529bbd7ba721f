// Package view turns a task list and filter mode into the rows and filter
// controls the terminal UI draws. It holds no state: every call builds a
// fresh View.
package view

import "todo-man/internal/tasks"

const (
    LabelComplete = "Complete"
    LabelUndo     = "Undo"
    LabelDelete   = "Delete"
)

// Row is one visible task. ID ties key presses on the row back to the task.
type Row struct {
    ID          int64
    Text        string
    Completed   bool
    ToggleLabel string
    DeleteLabel string
}

// FilterControl is one filter tab.
type FilterControl struct {
    Mode   tasks.Filter
    Label  string
    Active bool
}

type View struct {
    Rows    []Row
    Filters []FilterControl
    Counts  tasks.Counts
}

// Render builds the view of list under mode. decorations, when non-nil,
// replaces the displayed text of the rows it names.
func Render(list []tasks.Task, mode tasks.Filter, decorations map[int64]string) View {
    visible := tasks.FilteredTasks(list, mode)
    v := View{
        Rows:   make([]Row, 0, len(visible)),
        Counts: tasks.CountTasks(list),
    }
    for _, t := range visible {
        r := Row{ID: t.ID, Text: t.Text, Completed: t.Completed, ToggleLabel: LabelComplete, DeleteLabel: LabelDelete}
        if t.Completed { r.ToggleLabel = LabelUndo }
        if s, ok := decorations[t.ID]; ok && s != "" { r.Text = s }
        v.Rows = append(v.Rows, r)
    }
    for _, f := range tasks.Filters() {
        v.Filters = append(v.Filters, FilterControl{Mode: f, Label: f.Label(), Active: f == mode})
    }
    return v
}

// ActiveFilter returns the mode of the highlighted control.
func (v View) ActiveFilter() tasks.Filter {
    for _, f := range v.Filters {
        if f.Active { return f.Mode }
    }
    return tasks.FilterAll
}

// IndexOf returns the position of the row for id, or -1.
func (v View) IndexOf(id int64) int {
    for i, r := range v.Rows {
        if r.ID == id { return i }
    }
    return -1
}
