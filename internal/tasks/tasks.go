package tasks

import (
	"fmt"
	"time"
)

type Task struct {
    ID        int64  `json:"id"`
    Text      string `json:"text"`
    Completed bool   `json:"completed"`
}

// CreatedAt recovers the creation time encoded in the id (unix milliseconds).
func (t Task) CreatedAt() time.Time {
    if t.ID <= 0 { return time.Time{} }
    return time.UnixMilli(t.ID)
}

// clock is swapped in tests to get deterministic ids.
var clock = time.Now

// NextID returns an id derived from now that is strictly greater than every id in list.
func NextID(list []Task, now time.Time) int64 {
    id := now.UnixMilli()
    for _, t := range list {
        if t.ID >= id { id = t.ID + 1 }
    }
    return id
}

// AddTask returns a copy of list with a new incomplete task appended.
// Callers trim text and skip empty input.
func AddTask(list []Task, text string) []Task {
    out := make([]Task, len(list), len(list)+1)
    copy(out, list)
    return append(out, Task{ID: NextID(list, clock()), Text: text})
}

// ToggleTaskStatus flips Completed on the task with the given id.
// An unknown id yields an equal copy.
func ToggleTaskStatus(list []Task, id int64) []Task {
    out := make([]Task, len(list))
    for i, t := range list {
        if t.ID == id { t.Completed = !t.Completed }
        out[i] = t
    }
    return out
}

// DeleteTask returns list without the task with the given id.
func DeleteTask(list []Task, id int64) []Task {
    out := make([]Task, 0, len(list))
    for _, t := range list {
        if t.ID == id { continue }
        out = append(out, t)
    }
    return out
}

// Find returns the task with the given id.
func Find(list []Task, id int64) (Task, bool) {
    for _, t := range list {
        if t.ID == id { return t, true }
    }
    return Task{}, false
}

// Validate reports the first duplicate id in list.
func Validate(list []Task) error {
    seen := make(map[int64]struct{}, len(list))
    for _, t := range list {
        if _, dup := seen[t.ID]; dup { return fmt.Errorf("duplicate task id %d", t.ID) }
        seen[t.ID] = struct{}{}
    }
    return nil
}

// Merge appends incoming to list, assigning fresh ids to tasks whose id is already taken.
func Merge(list, incoming []Task) []Task {
    out := make([]Task, len(list), len(list)+len(incoming))
    copy(out, list)
    taken := make(map[int64]struct{}, len(list)+len(incoming))
    for _, t := range list { taken[t.ID] = struct{}{} }
    for _, t := range incoming {
        if _, ok := taken[t.ID]; ok || t.ID <= 0 {
            t.ID = NextID(out, clock())
        }
        taken[t.ID] = struct{}{}
        out = append(out, t)
    }
    return out
}
