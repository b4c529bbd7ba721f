package zipper

import (
    "archive/zip"
    "bytes"
    "encoding/json"
    "fmt"
    "io"
    "os"
    "path/filepath"
    "strings"
    "time"

    "github.com/google/uuid"

    "todo-man/internal/storage"
    "todo-man/internal/tasks"
)

const (
    manifestName = "todo-manifest.json"
    tasksName    = "tasks.json"
    readmeName   = "tasks.md"
    // ManifestVersion is bumped when the archive layout changes.
    ManifestVersion = 1
)

// ProgressCallback is called during export with current progress (current, total)
type ProgressCallback func(current, total int)

type Manifest struct {
    Version   int       `json:"version"`
    ExportID  string    `json:"exportId"`
    CreatedAt time.Time `json:"createdAt"`
    Count     int       `json:"count"`
    Completed int       `json:"completed"`
}

// ExportTasksWithProgress writes list into a zip with a manifest, the
// persisted JSON form and a markdown rendering. progress, when set, is
// called after each entry.
func ExportTasksWithProgress(list []tasks.Task, zipPath string, progress ProgressCallback) (Manifest, error) {
    c := tasks.CountTasks(list)
    m := Manifest{
        Version:   ManifestVersion,
        ExportID:  uuid.NewString(),
        CreatedAt: time.Now().UTC(),
        Count:     c.Total,
        Completed: c.Completed,
    }
    if err := os.MkdirAll(filepath.Dir(zipPath), 0o755); err != nil { return m, err }
    f, err := os.Create(zipPath)
    if err != nil { return m, err }
    defer f.Close()
    zw := zip.NewWriter(f)

    payload, err := storage.Encode(list)
    if err != nil { return m, err }
    var md bytes.Buffer
    if err := tasks.WriteMarkdown(list, &md); err != nil { return m, err }

    entries := []struct {
        name string
        write func(io.Writer) error
    }{
        {manifestName, func(w io.Writer) error { return writeJSON(w, m) }},
        {tasksName, func(w io.Writer) error { _, err := w.Write(payload); return err }},
        {readmeName, func(w io.Writer) error { _, err := w.Write(md.Bytes()); return err }},
    }
    for i, e := range entries {
        w, err := zw.Create(e.name)
        if err != nil { return m, err }
        if err := e.write(w); err != nil { return m, fmt.Errorf("write %s: %w", e.name, err) }
        if progress != nil { progress(i+1, len(entries)) }
    }
    if err := zw.Close(); err != nil { return m, err }
    return m, f.Close()
}

// ReadArchive loads the task list from an archive written by ExportTasksWithProgress.
// A plain JSON file (the persisted slot format) is accepted too.
func ReadArchive(path string) ([]tasks.Task, Manifest, error) {
    var m Manifest
    if strings.EqualFold(filepath.Ext(path), ".json") {
        b, err := os.ReadFile(path)
        if err != nil { return nil, m, err }
        list, err := storage.Decode(b)
        if err != nil { return nil, m, err }
        m.Count = len(list)
        return list, m, nil
    }

    r, err := zip.OpenReader(path)
    if err != nil { return nil, m, err }
    defer r.Close()

    var payload []byte
    var hasManifest bool
    for _, f := range r.File {
        switch strings.ToLower(filepath.Base(f.Name)) {
        case manifestName:
            b, err := readEntry(f)
            if err != nil { return nil, m, err }
            if err := json.Unmarshal(b, &m); err != nil { return nil, m, fmt.Errorf("invalid manifest in %s: %w", path, err) }
            hasManifest = true
        case tasksName:
            if payload, err = readEntry(f); err != nil { return nil, m, err }
        }
    }
    if !hasManifest { return nil, m, fmt.Errorf("manifest missing in %s", path) }
    if m.Version > ManifestVersion { return nil, m, fmt.Errorf("archive version %d is newer than supported %d", m.Version, ManifestVersion) }
    if payload == nil { return nil, m, fmt.Errorf("%s missing in %s", tasksName, path) }
    list, err := storage.Decode(payload)
    if err != nil { return nil, m, err }
    return list, m, nil
}

func writeJSON(w io.Writer, v any) error {
    b, err := json.MarshalIndent(v, "", "  ")
    if err != nil { return err }
    _, err = w.Write(b)
    return err
}

func readEntry(f *zip.File) ([]byte, error) {
    rc, err := f.Open()
    if err != nil { return nil, err }
    defer rc.Close()
    return io.ReadAll(rc)
}
