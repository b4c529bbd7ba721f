package tasks

import "strings"

// Filter selects which tasks are visible.
type Filter string

const (
    FilterAll       Filter = "all"
    FilterActive    Filter = "active"
    FilterCompleted Filter = "completed"
)

// Filters lists the modes in display order.
func Filters() []Filter { return []Filter{FilterAll, FilterActive, FilterCompleted} }

// ParseFilter normalizes a mode name. Unknown names report false.
func ParseFilter(s string) (Filter, bool) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "all", "":
        return FilterAll, true
    case "active", "todo", "open":
        return FilterActive, true
    case "completed", "done":
        return FilterCompleted, true
    }
    return FilterAll, false
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
    fs := Filters()
    for i, x := range fs {
        if x == f { return fs[(i+1)%len(fs)] }
    }
    return FilterAll
}

// Label is the capitalized name shown on filter controls.
func (f Filter) Label() string {
    switch f {
    case FilterActive:
        return "Active"
    case FilterCompleted:
        return "Completed"
    default:
        return "All"
    }
}

// FilteredTasks returns the visible subsequence of list for mode, preserving order.
// FilterAll (and any unrecognized mode) returns list itself.
func FilteredTasks(list []Task, mode Filter) []Task {
    switch mode {
    case FilterActive:
        return selectTasks(list, func(t Task) bool { return !t.Completed })
    case FilterCompleted:
        return selectTasks(list, func(t Task) bool { return t.Completed })
    default:
        return list
    }
}

func selectTasks(list []Task, keep func(Task) bool) []Task {
    out := make([]Task, 0, len(list))
    for _, t := range list {
        if keep(t) { out = append(out, t) }
    }
    return out
}

// Counts summarizes a list for footers and reports.
type Counts struct {
    Total     int
    Active    int
    Completed int
}

func CountTasks(list []Task) Counts {
    c := Counts{Total: len(list)}
    for _, t := range list {
        if t.Completed { c.Completed++ } else { c.Active++ }
    }
    return c
}
