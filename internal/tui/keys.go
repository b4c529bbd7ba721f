package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
    submit      key.Binding
    focusInput  key.Binding
    focusList   key.Binding
    toggle      key.Binding
    del         key.Binding
    filterAll   key.Binding
    filterAct   key.Binding
    filterDone  key.Binding
    filterNext  key.Binding
    copyText    key.Binding
    summary     key.Binding
    export      key.Binding
    reloadHooks key.Binding
    back        key.Binding
    help        key.Binding
    quit        key.Binding
}

func newKeymap() keymap {
    return keymap{
        submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
        focusInput:  key.NewBinding(key.WithKeys("a", "i", "tab"), key.WithHelp("a/tab", "new task")),
        focusList:   key.NewBinding(key.WithKeys("esc", "tab", "down"), key.WithHelp("esc/tab", "to list")),
        toggle:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "complete/undo")),
        del:         key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
        filterAll:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
        filterAct:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
        filterDone:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
        filterNext:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
        copyText:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
        summary:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "summary")),
        export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export zip")),
        reloadHooks: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload hooks")),
        back:        key.NewBinding(key.WithKeys("h", "esc", "q"), key.WithHelp("h/esc", "back")),
        help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
        quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
    }
}

var keys = newKeymap()

// ShortHelp and FullHelp make keymap a help.KeyMap for the list screen.
func (k keymap) ShortHelp() []key.Binding {
    return []key.Binding{k.toggle, k.del, k.focusInput, k.filterNext, k.help, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
    return [][]key.Binding{
        {k.toggle, k.del, k.copyText},
        {k.focusInput, k.submit, k.focusList},
        {k.filterAll, k.filterAct, k.filterDone, k.filterNext},
        {k.summary, k.export, k.reloadHooks, k.help, k.quit},
    }
}
