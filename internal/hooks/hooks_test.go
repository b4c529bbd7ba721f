package hooks

import (
    "os"
    "path/filepath"
    "reflect"
    "testing"
)

func TestLoadDirAndCall(t *testing.T) {
    dir := t.TempDir()
    js := `export function decorateTaskRow(t) {
    if (t.completed) { return null }
    return t.text.toUpperCase()
}`
    if err := os.WriteFile(filepath.Join(dir, "rows.js"), []byte(js), 0o644); err != nil { t.Fatal(err) }
    if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil { t.Fatal(err) }

    env, err := LoadDir(dir)
    if err != nil { t.Fatal(err) }
    if got := env.Available(); !reflect.DeepEqual(got, []string{"decorateTaskRow"}) {
        t.Fatalf("unexpected hooks: %v", got)
    }
    s, ok := env.CallString("decorateTaskRow", map[string]any{"text": "milk", "completed": false})
    if !ok || s != "MILK" { t.Fatalf("got %q %t", s, ok) }
    if _, ok := env.CallString("decorateTaskRow", map[string]any{"text": "milk", "completed": true}); ok {
        t.Fatal("null result should report no override")
    }
    if _, ok := env.CallString("normalizeTaskText", "x"); ok { t.Fatal("missing hook should not be callable") }
}

func TestLoadDirMissing(t *testing.T) {
    env, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
    if err != nil { t.Fatal(err) }
    if len(env.Available()) != 0 { t.Fatal("expected no hooks") }
}

func TestNilEnv(t *testing.T) {
    var env *HookEnv
    if _, ok := env.CallString("decorateTaskRow", nil); ok { t.Fatal("nil env should not call") }
}
