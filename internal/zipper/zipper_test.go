package zipper

import (
    "archive/zip"
    "errors"
    "os"
    "path/filepath"
    "reflect"
    "testing"

    "todo-man/internal/storage"
    "todo-man/internal/tasks"
)

func TestExportImport(t *testing.T) {
    root := t.TempDir()
    list := []tasks.Task{{ID: 1, Text: "A"}, {ID: 2, Text: "B", Completed: true}}
    zipPath := filepath.Join(root, "out", "tasks.zip")

    calls := 0
    m, err := ExportTasksWithProgress(list, zipPath, func(cur, total int) { calls++ })
    if err != nil { t.Fatalf("export: %v", err) }
    if m.ExportID == "" || m.Count != 2 || m.Completed != 1 { t.Fatalf("unexpected manifest %+v", m) }
    if calls != 3 { t.Fatalf("expected 3 progress calls, got %d", calls) }

    // Sanity check zip has manifest and markdown
    zr, err := zip.OpenReader(zipPath)
    if err != nil { t.Fatal(err) }
    names := map[string]bool{}
    for _, f := range zr.File { names[f.Name] = true }
    zr.Close()
    for _, n := range []string{manifestName, tasksName, readmeName} {
        if !names[n] { t.Fatalf("%s missing in zip", n) }
    }

    got, gm, err := ReadArchive(zipPath)
    if err != nil { t.Fatalf("import: %v", err) }
    if !reflect.DeepEqual(got, list) { t.Fatalf("got %+v, want %+v", got, list) }
    if gm.ExportID != m.ExportID { t.Fatalf("manifest id mismatch: %s vs %s", gm.ExportID, m.ExportID) }
}

func TestReadPlainJSON(t *testing.T) {
    path := filepath.Join(t.TempDir(), "todoTasks.json")
    if err := os.WriteFile(path, []byte(`[{"id":3,"text":"C","completed":false}]`), 0o644); err != nil { t.Fatal(err) }
    got, m, err := ReadArchive(path)
    if err != nil { t.Fatal(err) }
    if len(got) != 1 || got[0].Text != "C" || m.Count != 1 { t.Fatalf("got %+v %+v", got, m) }
}

func TestReadArchiveWithoutManifest(t *testing.T) {
    path := filepath.Join(t.TempDir(), "bare.zip")
    f, err := os.Create(path)
    if err != nil { t.Fatal(err) }
    zw := zip.NewWriter(f)
    w, _ := zw.Create(tasksName)
    w.Write([]byte("[]"))
    zw.Close()
    f.Close()
    if _, _, err := ReadArchive(path); err == nil { t.Fatal("expected missing manifest error") }
}

func TestReadCorruptPayload(t *testing.T) {
    path := filepath.Join(t.TempDir(), "bad.json")
    if err := os.WriteFile(path, []byte(`[{`), 0o644); err != nil { t.Fatal(err) }
    if _, _, err := ReadArchive(path); !errors.Is(err, storage.ErrCorrupt) { t.Fatalf("expected ErrCorrupt, got %v", err) }
}
