package tui

import (
    "strings"
    "testing"
    "time"

    tea "github.com/charmbracelet/bubbletea"

    "todo-man/internal/storage"
)

func TestRestorePick(t *testing.T) {
    infos := []storage.BackupInfo{
        {Suffix: "20240102-000000", ModTime: time.Now(), Size: 2048},
        {Suffix: "20240101-000000", ModTime: time.Now().Add(-time.Hour), Size: 1024},
    }
    var m tea.Model = NewRestore(infos, "/tmp/state.db")
    m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
    m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
    if cmd == nil { t.Fatal("enter should quit") }
    if got := m.(RestoreModel).Selected(); got != "20240101-000000" { t.Fatalf("selected %q", got) }
}

func TestRestoreQuitSelectsNothing(t *testing.T) {
    var m tea.Model = NewRestore(nil, "/tmp/state.db")
    if !strings.Contains(m.View(), "No backups found") { t.Fatalf("unexpected view: %s", m.View()) }
    m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
    if m.(RestoreModel).Selected() != "" { t.Fatal("quit should select nothing") }
}
