package tui

import (
    "errors"
    "fmt"
    "path/filepath"
    "strings"
    "time"

    "github.com/atotto/clipboard"
    "github.com/charmbracelet/bubbles/help"
    "github.com/charmbracelet/bubbles/key"
    "github.com/charmbracelet/bubbles/list"
    "github.com/charmbracelet/bubbles/spinner"
    "github.com/charmbracelet/bubbles/textinput"
    "github.com/charmbracelet/bubbles/viewport"
    tea "github.com/charmbracelet/bubbletea"
    "github.com/charmbracelet/lipgloss"
    "github.com/dustin/go-humanize"
    "github.com/rs/zerolog/log"

    "todo-man/internal/app"
    "todo-man/internal/config"
    "todo-man/internal/hooks"
    "todo-man/internal/storage"
    "todo-man/internal/tasks"
    "todo-man/internal/view"
    "todo-man/internal/zipper"
)

type focus int

const (
    focusInput focus = iota
    focusList
)

// headerLines is the height taken by the title, input and filter tabs.
const headerLines = 5

type model struct {
    cfg       config.Config
    store     storage.Persister
    ctrl      *app.Controller
    list      list.Model
    input     textinput.Model
    help      help.Model
    spin      spinner.Model
    vp        viewport.Model
    width     int
    height    int
    focus     focus
    loading   bool
    showHelp  bool
    summary   bool
    statusMsg string
    err       error
    // clock for row ages; replaced in tests
    now func() time.Time
}

type item struct {
    row view.Row
    age string
}

func (i item) Title() string {
    if i.row.Completed { return doneStyle.Render("[x] " + i.row.Text) }
    return "[ ] " + i.row.Text
}

func (i item) Description() string {
    d := fmt.Sprintf("space: %s • x: %s", i.row.ToggleLabel, i.row.DeleteLabel)
    if i.age != "" { d += " • added " + i.age }
    return d
}

func (i item) FilterValue() string { return i.row.Text }

var (
    titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
    tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#B0B7C3"})
    activeTabStyle = tabStyle.Copy().Bold(true).Underline(true).Foreground(lipgloss.Color("10"))
    doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
    statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// New builds the UI over store. Tasks are loaded by Init.
func New(cfg config.Config, store storage.Persister) model {
    lm := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
    lm.SetShowTitle(false)
    lm.SetShowStatusBar(false)
    lm.SetShowHelp(false)
    lm.SetFilteringEnabled(false)
    lm.DisableQuitKeybindings()
    lm.SetStatusBarItemName("task", "tasks")

    ti := textinput.New()
    ti.Placeholder = "What needs to be done?"
    ti.Prompt = "> "
    ti.Focus()

    sp := spinner.New()
    sp.Spinner = spinner.MiniDot
    return model{
        cfg: cfg, store: store, list: lm, input: ti, help: help.New(), spin: sp,
        focus: focusInput, loading: true, now: time.Now,
    }
}

// Err reports a fatal error that ended the program, such as a corrupt store.
func (m model) Err() error { return m.err }

func (m model) Init() tea.Cmd {
    return tea.Batch(loadCmd(m.cfg, m.store), textinput.Blink, m.spin.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
    switch msg := msg.(type) {
    case tea.WindowSizeMsg:
        m.width, m.height = msg.Width, msg.Height
        m.input.Width = max(10, m.width-4)
        m.list.SetSize(m.width, max(3, m.height-headerLines-2))
        if m.summary {
            m.vp.Width, m.vp.Height = m.width, max(3, m.height-2)
        }
        return m, nil
    case loadedMsg:
        m.ctrl = msg.ctrl
        m.loading = false
        m.syncList(0)
        c := m.ctrl.View().Counts
        m.statusMsg = fmt.Sprintf("%d tasks", c.Total)
        return m, nil
    case fatalMsg:
        m.err = msg.err
        return m, tea.Quit
    case hooksLoadedMsg:
        if m.ctrl != nil {
            m.ctrl.SetHooks(msg.env)
            m.syncList(m.selectedID())
        }
        m.statusMsg = fmt.Sprintf("hooks reloaded: %s", strings.Join(msg.env.Available(), ", "))
        if len(msg.env.Available()) == 0 { m.statusMsg = "hooks reloaded: none" }
        return m, nil
    case exportDoneMsg:
        if msg.err != nil {
            m.statusMsg = "export failed: " + msg.err.Error()
        } else {
            if ap, _ := filepath.Abs(msg.zipPath); ap != "" { msg.zipPath = ap }
            m.statusMsg = fmt.Sprintf("exported %d tasks (%d files) to %s", msg.count, msg.files, msg.zipPath)
        }
        return m, nil
    case spinner.TickMsg:
        if !m.loading { return m, nil }
        var cmd tea.Cmd
        m.spin, cmd = m.spin.Update(msg)
        return m, cmd
    case tea.KeyMsg:
        if msg.String() == "ctrl+c" { return m, tea.Quit }
        if m.loading { return m, nil }
        if m.summary { return m.updateSummary(msg) }
        if m.focus == focusInput { return m.updateInput(msg) }
        return m.updateList(msg)
    }
    if m.focus == focusInput {
        var cmd tea.Cmd
        m.input, cmd = m.input.Update(msg)
        return m, cmd
    }
    return m, nil
}

// updateInput handles the new-task field: enter submits, esc/tab leave it.
func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
    switch {
    case key.Matches(msg, keys.submit):
        added, err := m.ctrl.Submit(m.input.Value())
        if added {
            m.input.Reset()
            m.syncList(m.lastID())
            m.statusMsg = ""
        }
        if err != nil { m.statusMsg = "save failed: " + err.Error() }
        return m, nil
    case key.Matches(msg, keys.focusList):
        if len(m.list.Items()) == 0 && msg.String() != "esc" { return m, nil }
        m.focus = focusList
        m.input.Blur()
        return m, nil
    }
    var cmd tea.Cmd
    m.input, cmd = m.input.Update(msg)
    return m, cmd
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
    switch {
    case key.Matches(msg, keys.quit):
        return m, tea.Quit
    case key.Matches(msg, keys.focusInput):
        m.focus = focusInput
        return m, m.input.Focus()
    case key.Matches(msg, keys.toggle):
        return m.dispatch(app.ActionToggle)
    case key.Matches(msg, keys.del):
        return m.dispatch(app.ActionDelete)
    case key.Matches(msg, keys.filterAll):
        return m.selectFilter(tasks.FilterAll)
    case key.Matches(msg, keys.filterAct):
        return m.selectFilter(tasks.FilterActive)
    case key.Matches(msg, keys.filterDone):
        return m.selectFilter(tasks.FilterCompleted)
    case key.Matches(msg, keys.filterNext):
        return m.selectFilter(m.ctrl.Filter().Next())
    case key.Matches(msg, keys.copyText):
        if t, ok := m.selectedTask(); ok {
            if err := clipboard.WriteAll(t.Text); err != nil {
                m.statusMsg = "copy failed: " + err.Error()
            } else {
                m.statusMsg = "copied to clipboard"
            }
        }
        return m, nil
    case key.Matches(msg, keys.summary):
        m.openSummary()
        return m, nil
    case key.Matches(msg, keys.export):
        base := m.cfg.ExportDir
        if base == "" { base = "." }
        zipPath := filepath.Join(base, fmt.Sprintf("todo-tasks-%s.zip", time.Now().Format("20060102-150405")))
        m.statusMsg = "exporting..."
        return m, exportTasksCmd(m.ctrl.Tasks(), zipPath)
    case key.Matches(msg, keys.reloadHooks):
        return m, loadHooksCmd(m.cfg)
    case key.Matches(msg, keys.help):
        m.showHelp = !m.showHelp
        return m, nil
    }
    var cmd tea.Cmd
    m.list, cmd = m.list.Update(msg)
    return m, cmd
}

func (m model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
    if key.Matches(msg, keys.back) {
        m.summary = false
        return m, nil
    }
    var cmd tea.Cmd
    m.vp, cmd = m.vp.Update(msg)
    return m, cmd
}

// dispatch sends (action, id of the selected row) to the controller.
func (m model) dispatch(action app.Action) (tea.Model, tea.Cmd) {
    it, ok := m.list.SelectedItem().(item)
    if !ok { return m, nil }
    idx := m.list.Index()
    if err := m.ctrl.Dispatch(action, it.row.ID); err != nil {
        m.statusMsg = "save failed: " + err.Error()
    } else {
        m.statusMsg = ""
    }
    keep := it.row.ID
    if m.ctrl.View().IndexOf(keep) < 0 {
        // row left the view; stay at the same position
        keep = m.idAt(idx)
    }
    m.syncList(keep)
    return m, nil
}

func (m model) selectFilter(f tasks.Filter) (tea.Model, tea.Cmd) {
    id := m.selectedID()
    m.ctrl.SelectFilter(f)
    m.syncList(id)
    return m, nil
}

// syncList rebuilds every list item from the controller's latest view and
// selects the row for keepID when it is still visible.
func (m *model) syncList(keepID int64) {
    if m.ctrl == nil { return }
    v := m.ctrl.View()
    now := m.now()
    items := make([]list.Item, 0, len(v.Rows))
    for _, r := range v.Rows {
        age := ""
        if at := (tasks.Task{ID: r.ID}).CreatedAt(); !at.IsZero() && !at.After(now) {
            age = humanize.RelTime(at, now, "ago", "from now")
        }
        items = append(items, item{row: r, age: age})
    }
    m.list.SetItems(items)
    idx := v.IndexOf(keepID)
    if idx < 0 { idx = 0 }
    if len(items) > 0 { m.list.Select(idx) }
    if len(items) == 0 && m.focus == focusList {
        m.focus = focusInput
        m.input.Focus()
    }
}

func (m model) selectedID() int64 {
    if it, ok := m.list.SelectedItem().(item); ok { return it.row.ID }
    return 0
}

// idAt returns the id of the row now at position i (clamped), or 0.
func (m model) idAt(i int) int64 {
    rows := m.ctrl.View().Rows
    if len(rows) == 0 { return 0 }
    if i >= len(rows) { i = len(rows) - 1 }
    return rows[i].ID
}

func (m model) lastID() int64 {
    rows := m.ctrl.View().Rows
    if len(rows) == 0 { return 0 }
    return rows[len(rows)-1].ID
}

func (m model) selectedTask() (tasks.Task, bool) {
    if it, ok := m.list.SelectedItem().(item); ok {
        return tasks.Find(m.ctrl.Tasks(), it.row.ID)
    }
    return tasks.Task{}, false
}

func (m model) View() string {
    if m.err != nil { return "" }
    if m.loading { return fmt.Sprintf("%s Loading tasks...", m.spin.View()) }
    if m.summary {
        return "(h) back  (j/k) scroll\n\n" + m.vp.View()
    }
    v := m.ctrl.View()
    var b strings.Builder
    b.WriteString(titleStyle.Render("Todo"))
    b.WriteString("\n\n")
    b.WriteString(m.input.View())
    b.WriteString("\n\n")
    b.WriteString(filterTabs(v.Filters))
    b.WriteString("\n")
    if len(v.Rows) == 0 {
        b.WriteString("\n  nothing here\n")
    } else {
        b.WriteString(m.list.View())
        b.WriteString("\n")
    }
    b.WriteString(countsLine(v.Counts))
    if m.statusMsg != "" { b.WriteString("  " + statusStyle.Render(m.statusMsg)) }
    b.WriteString("\n")
    if m.showHelp {
        b.WriteString(m.help.FullHelpView(keys.FullHelp()))
    } else {
        b.WriteString(m.help.ShortHelpView(keys.ShortHelp()))
    }
    return b.String()
}

// filterTabs draws one tab per control; only the active one is highlighted.
func filterTabs(fs []view.FilterControl) string {
    parts := make([]string, 0, len(fs))
    for i, f := range fs {
        label := fmt.Sprintf("%d %s", i+1, f.Label)
        if f.Active {
            parts = append(parts, activeTabStyle.Render(label))
        } else {
            parts = append(parts, tabStyle.Render(label))
        }
    }
    return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func countsLine(c tasks.Counts) string {
    noun := "items"
    if c.Active == 1 { noun = "item" }
    return fmt.Sprintf("%d %s left, %d completed", c.Active, noun, c.Completed)
}

type loadedMsg struct{ ctrl *app.Controller }
type fatalMsg struct{ err error }
type hooksLoadedMsg struct{ env *hooks.HookEnv }
type exportDoneMsg struct {
    count   int
    files   int
    zipPath string
    err     error
}

// loadCmd loads hooks and the task list. Any load error is fatal.
func loadCmd(cfg config.Config, store storage.Persister) tea.Cmd {
    return func() tea.Msg {
        env, err := hooks.LoadDir(cfg.HooksDir)
        if err != nil { log.Warn().Err(err).Str("dir", cfg.HooksDir).Msg("hooks unavailable") }
        ctrl, err := app.New(store, app.WithHooks(env))
        if err != nil {
            if errors.Is(err, storage.ErrCorrupt) {
                err = fmt.Errorf("%w (remove or restore the database to continue)", err)
            }
            return fatalMsg{err}
        }
        return loadedMsg{ctrl}
    }
}

func loadHooksCmd(cfg config.Config) tea.Cmd {
    return func() tea.Msg {
        env, err := hooks.LoadDir(cfg.HooksDir)
        if err != nil { log.Warn().Err(err).Str("dir", cfg.HooksDir).Msg("hooks unavailable") }
        return hooksLoadedMsg{env}
    }
}

// exportTasksCmd writes list to zipPath; the finished message reports how
// many archive entries were written.
func exportTasksCmd(list []tasks.Task, zipPath string) tea.Cmd {
    return func() tea.Msg {
        files := 0
        m, err := zipper.ExportTasksWithProgress(list, zipPath, func(cur, total int) {
            files = cur
            log.Debug().Str("component", "tui").Int("entry", cur).Int("entries", total).Msg("export progress")
        })
        if err == nil {
            log.Info().Str("component", "tui").Str("export", m.ExportID).Str("path", zipPath).Int("tasks", m.Count).Msg("exported")
        }
        return exportDoneMsg{count: len(list), files: files, zipPath: zipPath, err: err}
    }
}

