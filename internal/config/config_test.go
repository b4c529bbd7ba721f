package config

import (
    "os"
    "path/filepath"
    "testing"
)

func TestLoadMergesOverDefaults(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, "todo-man.json")
    if err := os.WriteFile(path, []byte(`{"dbPath": "/tmp/x.db", "debug": true}`), 0o644); err != nil { t.Fatal(err) }

    cfg := Default()
    if err := Load(path, &cfg); err != nil { t.Fatal(err) }
    if cfg.DBPath != "/tmp/x.db" || !cfg.Debug { t.Fatalf("file values not applied: %+v", cfg) }
    if cfg.SlotKey != "todoTasks" { t.Fatalf("default slot key lost: %q", cfg.SlotKey) }
    if cfg.HooksDir != Default().HooksDir { t.Fatalf("default hooks dir lost: %q", cfg.HooksDir) }
}

func TestLoadMissing(t *testing.T) {
    cfg := Default()
    err := Load(filepath.Join(t.TempDir(), "none.json"), &cfg)
    if !os.IsNotExist(err) { t.Fatalf("expected not-exist error, got %v", err) }
}

func TestSaveLoadRoundTrip(t *testing.T) {
    path := filepath.Join(t.TempDir(), "nested", "cfg.json")
    want := Default()
    want.ExportDir = "/exports"
    want.SlotKey = "other"
    if err := Save(path, want); err != nil { t.Fatal(err) }
    got := Default()
    if err := Load(path, &got); err != nil { t.Fatal(err) }
    if got != want { t.Fatalf("got %+v, want %+v", got, want) }
}

func TestExpandHome(t *testing.T) {
    if got := ExpandHome("~/a/b"); got != filepath.Join(UserHome(), "a/b") { t.Fatalf("got %q", got) }
    if got := ExpandHome("/abs"); got != "/abs" { t.Fatalf("got %q", got) }
}
