package tasks

import (
    "fmt"
    "io"
    "strings"
    "time"
)

// WriteMarkdown renders list as a checklist grouped by status.
func WriteMarkdown(list []Task, w io.Writer) error {
    c := CountTasks(list)
    fmt.Fprintf(w, "# Tasks\n\n")
    fmt.Fprintf(w, "- Total: %d\n- Active: %d\n- Completed: %d\n\n", c.Total, c.Active, c.Completed)

    sections := []struct {
        title string
        mode  Filter
    }{
        {"Active", FilterActive},
        {"Completed", FilterCompleted},
    }
    for _, sec := range sections {
        sub := FilteredTasks(list, sec.mode)
        if len(sub) == 0 { continue }
        fmt.Fprintf(w, "## %s\n\n", sec.title)
        for _, t := range sub {
            box := " "
            if t.Completed { box = "x" }
            line := fmt.Sprintf("- [%s] %s", box, escapeMarkdown(t.Text))
            if at := t.CreatedAt(); !at.IsZero() {
                line += fmt.Sprintf(" _(%s)_", at.Local().Format(time.DateTime))
            }
            if _, err := fmt.Fprintln(w, line); err != nil { return err }
        }
        fmt.Fprintln(w)
    }
    if c.Total == 0 {
        _, err := fmt.Fprintln(w, "_No tasks._")
        return err
    }
    return nil
}

// escapeMarkdown keeps task text from opening emphasis or links inside a list item.
func escapeMarkdown(s string) string {
    r := strings.NewReplacer(
        `\`, `\\`,
        "*", `\*`,
        "_", `\_`,
        "`", "\\`",
        "[", `\[`,
        "]", `\]`,
    )
    return r.Replace(s)
}
