package tui

import (
    "fmt"
    "os/exec"
    "path/filepath"
    "runtime"

    tea "github.com/charmbracelet/bubbletea"
    "github.com/charmbracelet/lipgloss"
    "github.com/dustin/go-humanize"

    "todo-man/internal/storage"
)

// RestoreModel lets the user pick a database backup to restore.
type RestoreModel struct {
    entries        []storage.BackupInfo
    dbPath         string
    idx            int
    quitting       bool
    selectedSuffix string
    msg            string
}

func NewRestore(infos []storage.BackupInfo, dbPath string) RestoreModel {
    return RestoreModel{entries: infos, dbPath: dbPath}
}

func (m RestoreModel) Init() tea.Cmd { return nil }

func (m RestoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
    switch msg := msg.(type) {
    case tea.KeyMsg:
        switch msg.String() {
        case "q", "esc", "ctrl+c":
            m.quitting = true
            return m, tea.Quit
        case "up", "k":
            if m.idx > 0 { m.idx-- }
            return m, nil
        case "down", "j":
            if m.idx < len(m.entries)-1 { m.idx++ }
            return m, nil
        case "enter":
            if len(m.entries) > 0 {
                m.selectedSuffix = m.entries[m.idx].Suffix
            }
            return m, tea.Quit
        case "o":
            dir := filepath.Dir(m.dbPath)
            openDir(dir)
            m.msg = fmt.Sprintf("opened: %s", dir)
            return m, nil
        }
    }
    return m, nil
}

func (m RestoreModel) View() string {
    if m.quitting {
        return ""
    }
    styleSel := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
    header := "Restore task database from backup\n"
    header += fmt.Sprintf("Database: %s\n", m.dbPath)
    header += "Close other todo-man windows before restoring!\n"
    header += "Use ↑/↓ or j/k to navigate, Enter to restore, o to open folder, q to quit.\n\n"
    if len(m.entries) == 0 {
        return header + "No backups found.\n"
    }
    body := ""
    for i, e := range m.entries {
        line := fmt.Sprintf("%s  %s  (%s)", e.ModTime.Format("2006-01-02 15:04:05"), e.Suffix, humanize.Bytes(uint64(e.Size)))
        if i == m.idx {
            body += styleSel.Render("> "+line) + "\n"
        } else {
            body += "  " + line + "\n"
        }
    }
    if m.msg != "" { body += "\n" + m.msg + "\n" }
    return header + body
}

// Selected returns the suffix chosen with Enter, or "" when the user quit.
func (m RestoreModel) Selected() string {
    if m.quitting { return "" }
    return m.selectedSuffix
}

func openDir(dir string) {
    switch runtime.GOOS {
    case "darwin":
        _ = exec.Command("open", dir).Start()
    case "windows":
        _ = exec.Command("explorer", dir).Start()
    default:
        _ = exec.Command("xdg-open", dir).Start()
    }
}
