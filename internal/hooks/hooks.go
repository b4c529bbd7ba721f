package hooks

import (
    "os"
    "path/filepath"
    "sort"
    "strings"

    "github.com/dop251/goja"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
)

// Known hook functions. Any of them may be absent.
var Names = []string{"decorateTaskRow", "normalizeTaskText"}

type HookEnv struct {
    rt     *goja.Runtime
    logger zerolog.Logger
}

// LoadDir evaluates every *.js file in dir (sorted by name) into one runtime.
// A missing dir yields an env with no hooks.
func LoadDir(dir string) (*HookEnv, error) {
    env := &HookEnv{rt: goja.New(), logger: log.With().Str("component", "hooks").Logger()}
    if dir == "" { return env, nil }
    entries, err := os.ReadDir(dir)
    if err != nil {
        if os.IsNotExist(err) { return env, nil }
        return env, err
    }
    sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
    for _, e := range entries {
        if e.IsDir() || filepath.Ext(e.Name()) != ".js" { continue }
        b, err := os.ReadFile(filepath.Join(dir, e.Name()))
        if err != nil { continue }
        if err := env.Eval(e.Name(), string(b)); err != nil {
            env.logger.Warn().Err(err).Str("file", e.Name()).Msg("error evaluating hook file")
        } else {
            env.logger.Debug().Str("file", e.Name()).Msg("loaded")
        }
    }
    for _, name := range env.Available() {
        env.logger.Debug().Str("hook", name).Msg("function available")
    }
    return env, nil
}

// Eval runs JS source in the env. Simple ESM export keywords are stripped.
func (h *HookEnv) Eval(name, code string) error {
    code = strings.ReplaceAll(code, "export function ", "function ")
    code = strings.ReplaceAll(code, "export const ", "const ")
    code = strings.ReplaceAll(code, "export let ", "let ")
    code = strings.ReplaceAll(code, "export var ", "var ")
    _, err := h.rt.RunScript(name, code)
    return err
}

// Available lists which known hooks are defined.
func (h *HookEnv) Available() []string {
    if h == nil || h.rt == nil { return nil }
    var out []string
    for _, name := range Names {
        v := h.rt.Get(name)
        if v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) { out = append(out, name) }
    }
    return out
}

func (h *HookEnv) Call(fn string, arg any) (goja.Value, bool) {
    if h == nil || h.rt == nil { return goja.Undefined(), false }
    v := h.rt.Get(fn)
    if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
        return goja.Undefined(), false
    }
    f, ok := goja.AssertFunction(v)
    if !ok {
        h.logger.Debug().Str("hook", fn).Msg("symbol is not a function")
        return goja.Undefined(), false
    }
    rv, err := f(goja.Undefined(), h.rt.ToValue(arg))
    if err != nil {
        h.logger.Warn().Err(err).Str("hook", fn).Msg("error calling hook")
        return goja.Undefined(), false
    }
    if goja.IsUndefined(rv) || goja.IsNull(rv) { return rv, false }
    return rv, true
}

func (h *HookEnv) CallString(fn string, arg any) (string, bool) {
    if rv, ok := h.Call(fn, arg); ok { return rv.String(), true }
    return "", false
}

