package tasks

import (
    "strings"
    "time"

    "github.com/rs/zerolog/log"
)

// HookCaller is the subset of hooks.HookEnv used here.
type HookCaller interface {
    CallString(fn string, arg any) (string, bool)
}

// PrepareText trims raw input and, when available, passes it through the
// normalizeTaskText hook. Inner whitespace is kept as typed. A hook returning
// blank text is ignored.
func PrepareText(env HookCaller, raw string) string {
    text := strings.TrimSpace(raw)
    if env == nil || text == "" { return text }
    if s, ok := env.CallString("normalizeTaskText", text); ok {
        if s = strings.TrimSpace(s); s != "" {
            log.Debug().Str("component", "hooks").Str("hook", "normalizeTaskText").Msg("override applied")
            return s
        }
    }
    return text
}

// DecorateRows asks the decorateTaskRow hook for display text of each task.
// Only tasks with a non-empty override appear in the result.
func DecorateRows(env HookCaller, list []Task) map[int64]string {
    out := map[int64]string{}
    if env == nil { return out }
    for _, t := range list {
        if s, ok := env.CallString("decorateTaskRow", taskToMap(t)); ok {
            if s = CleanText(s); s != "" {
                out[t.ID] = s
            }
        }
    }
    if len(out) > 0 {
        log.Debug().Str("component", "hooks").Int("rows", len(out)).Msg("decorateTaskRow overrides")
    }
    return out
}

func taskToMap(t Task) map[string]any {
    m := map[string]any{
        "id":        t.ID,
        "text":      t.Text,
        "completed": t.Completed,
    }
    if at := t.CreatedAt(); !at.IsZero() {
        m["createdAt"] = at.Format(time.RFC3339)
    }
    return m
}
