package report

import (
    "bytes"
    "os"
    "path/filepath"
    "strings"
    "testing"

    "todo-man/internal/tasks"
)

func sample() []tasks.Task {
    return []tasks.Task{{ID: 1700000000000, Text: "Buy milk"}, {ID: 1700000000001, Text: "Call, mom", Completed: true}}
}

func TestExportFormats(t *testing.T) {
    cases := []struct {
        format string
        want   string
    }{
        {"json", `"text": "Buy milk"`},
        {"csv", `1700000000001,"Call, mom",true`},
        {"md", "- [x] Call, mom"},
        {".pdf", "%PDF"},
    }
    for _, tc := range cases {
        t.Run(tc.format, func(t *testing.T) {
            b, err := Export(sample(), tc.format)
            if err != nil { t.Fatal(err) }
            if !bytes.Contains(b, []byte(tc.want)) { t.Fatalf("%s output missing %q:\n%s", tc.format, tc.want, b) }
        })
    }
}

func TestExportUnknown(t *testing.T) {
    if _, err := Export(sample(), "xlsx"); err == nil { t.Fatal("expected error") }
}

func TestWriteFile(t *testing.T) {
    path := filepath.Join(t.TempDir(), "out", "tasks.csv")
    if err := WriteFile(sample(), path); err != nil { t.Fatal(err) }
    b, err := os.ReadFile(path)
    if err != nil { t.Fatal(err) }
    if !strings.HasPrefix(string(b), "id,text,completed,created_at") { t.Fatalf("unexpected csv header: %s", b) }
}
