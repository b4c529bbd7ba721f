package tasks

import (
    "strings"
    "unicode"
)

// CleanText flattens s to one display line: control characters become spaces,
// runs of whitespace collapse to one space and the ends are trimmed.
// Stored task text never goes through it; only hook-provided row text does.
func CleanText(s string) string {
    s = strings.Map(func(r rune) rune {
        if unicode.IsControl(r) { return ' ' }
        return r
    }, s)
    return strings.Join(strings.Fields(s), " ")
}
