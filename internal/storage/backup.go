package storage

import (
    "fmt"
    "os"
    "path/filepath"
    "sort"
    "strings"
    "time"

    "github.com/rs/zerolog/log"
)

const backupInfix = ".bak-"

// BackupInfo describes a snapshot of the database file.
type BackupInfo struct {
    Path    string
    Suffix  string
    ModTime time.Time
    Size    int64
}

// BackupSuffix formats t the way backup file names carry it.
func BackupSuffix(t time.Time) string { return t.Format("20060102-150405") }

// Backup writes a consistent snapshot of the database to <path>.bak-<suffix>.
func (s *Slot) Backup(suffix string) (string, error) {
    if suffix == "" { suffix = BackupSuffix(time.Now()) }
    dst := s.path + backupInfix + suffix
    if _, err := os.Stat(dst); err == nil {
        return "", fmt.Errorf("backup already exists: %s", dst)
    }
    if _, err := s.db.Exec("VACUUM INTO ?", dst); err != nil {
        return "", fmt.Errorf("backup %s: %w", s.path, err)
    }
    s.logger.Info().Str("backup", dst).Msg("backup written")
    return dst, nil
}

// ListBackups returns backups of the database at dbPath, newest first.
func ListBackups(dbPath string) ([]BackupInfo, error) {
    dir := filepath.Dir(dbPath)
    prefix := filepath.Base(dbPath) + backupInfix
    entries, err := os.ReadDir(dir)
    if err != nil {
        if os.IsNotExist(err) { return nil, nil }
        return nil, err
    }
    var out []BackupInfo
    for _, e := range entries {
        name := e.Name()
        if !e.Type().IsRegular() || !strings.HasPrefix(name, prefix) { continue }
        info, err := e.Info(); if err != nil { continue }
        out = append(out, BackupInfo{
            Path:    filepath.Join(dir, name),
            Suffix:  strings.TrimPrefix(name, prefix),
            ModTime: info.ModTime(),
            Size:    info.Size(),
        })
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ModTime.After(out[j].ModTime) })
    return out, nil
}

// RestoreFromBackup replaces the database at dbPath with the backup carrying suffix.
// The database must not be open.
func RestoreFromBackup(dbPath, suffix string) error {
    src := dbPath + backupInfix + suffix
    if _, err := os.Stat(src); err != nil { return fmt.Errorf("backup not found: %s", src) }
    if err := copyFile(src, dbPath); err != nil { return fmt.Errorf("restore: %w", err) }
    // stale WAL pages would be replayed over the restored file
    for _, ext := range []string{"-wal", "-shm"} {
        if err := os.Remove(dbPath + ext); err != nil && !os.IsNotExist(err) { return err }
    }
    log.Info().Str("component", "storage").Str("backup", src).Msg("restored")
    return nil
}

func copyFile(src, dst string) error {
    b, err := os.ReadFile(src)
    if err != nil { return err }
    tmp := dst + ".tmp-" + BackupSuffix(time.Now())
    if err := os.WriteFile(tmp, b, 0o600); err != nil { return err }
    return os.Rename(tmp, dst)
}
