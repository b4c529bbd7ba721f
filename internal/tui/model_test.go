package tui

import (
    "errors"
    "os"
    "path/filepath"
    "reflect"
    "strings"
    "testing"

    tea "github.com/charmbracelet/bubbletea"

    "todo-man/internal/config"
    "todo-man/internal/storage"
    "todo-man/internal/tasks"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
    enter = tea.KeyMsg{Type: tea.KeyEnter}
    tab   = tea.KeyMsg{Type: tea.KeyTab}
    space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func newLoaded(t *testing.T, store storage.Persister) model {
    t.Helper()
    cfg := config.Default()
    cfg.HooksDir = ""
    m := New(cfg, store)
    m = send(t, m, loadCmd(cfg, store)())
    if m.loading || m.ctrl == nil { t.Fatalf("model not loaded: err=%v", m.err) }
    return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
    t.Helper()
    for _, msg := range msgs {
        next, _ := m.Update(msg)
        m = next.(model)
    }
    return m
}

func visible(m model) []string {
    out := []string{}
    for _, r := range m.ctrl.View().Rows { out = append(out, r.Text) }
    return out
}

func TestAddFromInput(t *testing.T) {
    store := &storage.Memory{}
    m := newLoaded(t, store)
    m = send(t, m, runes("Buy milk"), enter)
    if got := visible(m); !reflect.DeepEqual(got, []string{"Buy milk"}) { t.Fatalf("rows: %v", got) }
    if m.input.Value() != "" { t.Fatalf("input not cleared: %q", m.input.Value()) }
    if store.Saves != 1 { t.Fatalf("expected one save, got %d", store.Saves) }
    if len(m.list.Items()) != 1 { t.Fatalf("list items not rebuilt: %d", len(m.list.Items())) }
}

func TestBlankSubmitKeepsInput(t *testing.T) {
    store := &storage.Memory{}
    m := newLoaded(t, store)
    m = send(t, m, runes("   "), enter)
    if len(visible(m)) != 0 || store.Saves != 0 { t.Fatal("blank input should be ignored") }
}

func TestToggleFilterAndDeleteKeys(t *testing.T) {
    m := newLoaded(t, &storage.Memory{})
    m = send(t, m, runes("A"), enter, runes("B"), enter)
    m = send(t, m, tab)
    if m.focus != focusList { t.Fatal("tab should move focus to the list") }
    if it, _ := m.list.SelectedItem().(item); it.row.Text != "B" { t.Fatalf("newest task should be selected, got %+v", it) }

    m = send(t, m, runes("k"), space)
    m = send(t, m, runes("3"))
    if got := visible(m); !reflect.DeepEqual(got, []string{"A"}) { t.Fatalf("completed: %v", got) }
    m = send(t, m, runes("2"))
    if got := visible(m); !reflect.DeepEqual(got, []string{"B"}) { t.Fatalf("active: %v", got) }
    if m.ctrl.Filter() != tasks.FilterActive { t.Fatalf("filter %s", m.ctrl.Filter()) }

    m = send(t, m, runes("x"))
    if got := visible(m); len(got) != 0 { t.Fatalf("expected no active rows, got %v", got) }
    if m.focus != focusInput { t.Fatal("empty list should hand focus back to input") }
    m = send(t, m, runes("1"))
    // "1" typed into the input, not a filter switch
    if m.input.Value() != "1" { t.Fatalf("expected input to receive text, got %q", m.input.Value()) }
}

func TestDeleteSelectedAfterNavigation(t *testing.T) {
    m := newLoaded(t, &storage.Memory{})
    m = send(t, m, runes("A"), enter, runes("B"), enter, runes("C"), enter, tab)
    m = send(t, m, runes("j"), runes("j"), runes("k"), runes("x"))
    if got := visible(m); !reflect.DeepEqual(got, []string{"A", "C"}) { t.Fatalf("rows: %v", got) }
    if it, ok := m.list.SelectedItem().(item); !ok || it.row.Text != "C" {
        t.Fatalf("selection should move to the next row, got %+v", m.list.SelectedItem())
    }
}

func TestFilterCycleAndTabs(t *testing.T) {
    m := newLoaded(t, &storage.Memory{})
    m = send(t, m, runes("A"), enter, tab, runes("f"))
    if m.ctrl.Filter() != tasks.FilterActive { t.Fatalf("f should cycle to active, got %s", m.ctrl.Filter()) }
    out := m.View()
    for _, want := range []string{"1 All", "2 Active", "3 Completed", "1 item left"} {
        if !strings.Contains(out, want) { t.Fatalf("view missing %q:\n%s", want, out) }
    }
}

func TestReloadKeepsTasksResetsFilter(t *testing.T) {
    store := &storage.Memory{}
    m := newLoaded(t, store)
    m = send(t, m, runes("A"), enter, tab, runes("3"))
    again := newLoaded(t, store)
    if got := visible(again); !reflect.DeepEqual(got, []string{"A"}) { t.Fatalf("reloaded rows: %v", got) }
    if again.ctrl.Filter() != tasks.FilterAll { t.Fatal("filter should not persist") }
}

func TestCorruptStoreQuits(t *testing.T) {
    store := &storage.Memory{Data: []byte("{")}
    m := New(config.Config{}, store)
    next, cmd := m.Update(loadCmd(config.Config{}, store)())
    if cmd == nil { t.Fatal("expected quit command") }
    if err := next.(model).Err(); !errors.Is(err, storage.ErrCorrupt) { t.Fatalf("expected ErrCorrupt, got %v", err) }
}

func TestSummaryScreen(t *testing.T) {
    m := newLoaded(t, &storage.Memory{})
    m = send(t, m, runes("A"), enter, tab, runes("m"))
    if !m.summary { t.Fatal("m should open the summary") }
    m = send(t, m, runes("h"))
    if m.summary { t.Fatal("h should close the summary") }
}

func TestSummaryMarkdown(t *testing.T) {
    md := summaryMarkdown([]tasks.Task{{ID: 1, Text: "A"}, {ID: 2, Text: "B", Completed: true}})
    if !strings.Contains(md, "- [ ] A") || !strings.Contains(md, "- [x] B") { t.Fatalf("unexpected markdown:\n%s", md) }
}

// press sends one key and runs the command it returns, if any.
func press(t *testing.T, m model, k tea.KeyMsg) model {
    t.Helper()
    next, cmd := m.Update(k)
    m = next.(model)
    if cmd == nil { t.Fatalf("key %q returned no command", k.String()) }
    return send(t, m, cmd())
}

func TestExportKeyWritesArchive(t *testing.T) {
    m := newLoaded(t, &storage.Memory{})
    m.cfg.ExportDir = t.TempDir()
    m = send(t, m, runes("A"), enter, tab)
    m = press(t, m, runes("e"))
    if !strings.Contains(m.statusMsg, "exported 1 tasks (3 files)") { t.Fatalf("status: %q", m.statusMsg) }
    zips, _ := filepath.Glob(filepath.Join(m.cfg.ExportDir, "todo-tasks-*.zip"))
    if len(zips) != 1 { t.Fatalf("expected one archive, got %v", zips) }
}

func TestReloadHooksKeyDecoratesRows(t *testing.T) {
    m := newLoaded(t, &storage.Memory{})
    dir := t.TempDir()
    js := "export function decorateTaskRow(t) { return '* ' + t.text }\n"
    if err := os.WriteFile(filepath.Join(dir, "rows.js"), []byte(js), 0o644); err != nil { t.Fatal(err) }
    m.cfg.HooksDir = dir
    m = send(t, m, runes("A"), enter, tab)
    m = press(t, m, runes("R"))
    if got := visible(m); !reflect.DeepEqual(got, []string{"* A"}) { t.Fatalf("rows: %v", got) }
    if m.ctrl.Tasks()[0].Text != "A" { t.Fatal("stored text must not change") }
    if !strings.Contains(m.statusMsg, "decorateTaskRow") { t.Fatalf("status: %q", m.statusMsg) }
}

func TestSubmitKeepsInnerWhitespace(t *testing.T) {
    m := newLoaded(t, &storage.Memory{})
    long := strings.Repeat("y", 600)
    m = send(t, m, runes("  Buy   milk  "), enter, runes(long), enter)
    if got := visible(m); !reflect.DeepEqual(got, []string{"Buy   milk", long}) { t.Fatalf("rows: %q", got) }
}
