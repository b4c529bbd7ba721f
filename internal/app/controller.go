// Package app owns the task list and filter mode and coordinates the store,
// the view renderer and persistence for every user action.
package app

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"todo-man/internal/storage"
	"todo-man/internal/tasks"
	"todo-man/internal/view"
)

// Action is what a row control asks to do with its task.
type Action string

const (
    ActionToggle Action = "toggle"
    ActionDelete Action = "delete"
)

var dispatch = map[Action]func([]tasks.Task, int64) []tasks.Task{
    ActionToggle: tasks.ToggleTaskStatus,
    ActionDelete: tasks.DeleteTask,
}

// Controller is the single owner of mutable state. It is not safe for
// concurrent use; the TUI calls it from its update loop only.
type Controller struct {
    store  storage.Persister
    hooks  tasks.HookCaller
    list   []tasks.Task
    filter tasks.Filter
    view   view.View
    logger zerolog.Logger
}

type Option func(*Controller)

// WithHooks enables text normalization and row decoration hooks.
func WithHooks(h tasks.HookCaller) Option { return func(c *Controller) { c.hooks = h } }

// New loads the list once from p and renders it under the "all" filter.
// A load error (including a corrupt slot) is returned as is.
func New(p storage.Persister, opts ...Option) (*Controller, error) {
    c := &Controller{
        store:  p,
        filter: tasks.FilterAll,
        logger: log.With().Str("component", "controller").Logger(),
    }
    for _, o := range opts { o(c) }
    list, err := p.Load()
    if err != nil { return nil, fmt.Errorf("load tasks: %w", err) }
    if err := tasks.Validate(list); err != nil {
        // first occurrence keeps its id; later ones get fresh ids
        list = tasks.Merge(nil, list)
        c.logger.Warn().Err(err).Msg("reassigned duplicate ids in stored list")
    }
    c.list = list
    c.render()
    c.logger.Debug().Int("tasks", len(list)).Msg("initialized")
    return c, nil
}

// Submit adds a task from raw input. Blank input is ignored and reports false.
func (c *Controller) Submit(raw string) (bool, error) {
    text := tasks.PrepareText(c.hooks, raw)
    if text == "" { return false, nil }
    c.list = tasks.AddTask(c.list, text)
    c.logger.Debug().Int64("id", c.list[len(c.list)-1].ID).Msg("task added")
    return true, c.commit()
}

// Dispatch applies action to the task with id, then re-renders and saves.
// An unknown action or id leaves the list unchanged but still re-renders
// and saves.
func (c *Controller) Dispatch(action Action, id int64) error {
    if fn, ok := dispatch[action]; ok {
        c.list = fn(c.list, id)
        c.logger.Debug().Str("action", string(action)).Int64("id", id).Msg("dispatched")
    } else {
        c.logger.Debug().Str("action", string(action)).Msg("unknown action")
    }
    return c.commit()
}

// SelectFilter changes the visible subset. The mode is not persisted.
func (c *Controller) SelectFilter(mode tasks.Filter) {
    c.filter = mode
    c.render()
}

// Import appends tasks from an archive, reassigning ids that collide.
func (c *Controller) Import(incoming []tasks.Task) (int, error) {
    n := 0
    clean := make([]tasks.Task, 0, len(incoming))
    for _, t := range incoming {
        if t.Text = strings.TrimSpace(t.Text); t.Text == "" { continue }
        clean = append(clean, t)
        n++
    }
    if n == 0 { return 0, nil }
    c.list = tasks.Merge(c.list, clean)
    return n, c.commit()
}

// SetHooks swaps the hook env, for hooks loaded after startup, and re-renders.
func (c *Controller) SetHooks(h tasks.HookCaller) {
    c.hooks = h
    c.render()
}

// Tasks returns a copy of the full list.
func (c *Controller) Tasks() []tasks.Task { return append([]tasks.Task(nil), c.list...) }

func (c *Controller) Filter() tasks.Filter { return c.filter }

// View returns the most recent render.
func (c *Controller) View() view.View { return c.view }

func (c *Controller) commit() error {
    c.render()
    if err := c.store.Save(c.list); err != nil {
        c.logger.Error().Err(err).Msg("save failed")
        return fmt.Errorf("save tasks: %w", err)
    }
    return nil
}

func (c *Controller) render() {
    c.view = view.Render(c.list, c.filter, tasks.DecorateRows(c.hooks, c.list))
}
