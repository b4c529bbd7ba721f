package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

type Config struct {
    DBPath    string `json:"dbPath" mapstructure:"dbPath"`       // sqlite file holding the task slot
    SlotKey   string `json:"slotKey" mapstructure:"slotKey"`     // key of the slot inside the db
    HooksDir  string `json:"hooksDir" mapstructure:"hooksDir"`
    ExportDir string `json:"exportDir" mapstructure:"exportDir"` // default destination for TUI exports
    LogFile   string `json:"logFile" mapstructure:"logFile"`
    Debug     bool   `json:"debug" mapstructure:"debug"`
}

func Default() Config {
    dir := AppDir()
    return Config{
        DBPath:   filepath.Join(dir, "state.db"),
        SlotKey:  "todoTasks",
        HooksDir: filepath.Join(dir, "hooks"),
        // CWD by default; app will fallback to "." when empty
        ExportDir: "",
        LogFile:   filepath.Join(dir, "todo-man.log"),
        Debug:     false,
    }
}

// DefaultPath is where the config file is looked up when -config is not given.
func DefaultPath() string { return filepath.Join(UserHome(), ".config", "todo-man.json") }

// AppDir holds the database, hooks and log by default.
func AppDir() string { return filepath.Join(UserHome(), ".config", "todo-man") }

// Load reads the file at path over out. Fields missing from the file keep
// the values already in out. The format follows the file extension (json,
// yaml, toml); files without one are read as JSON.
func Load(path string, out *Config) error {
    if _, err := os.Stat(path); err != nil {
        return err
    }
    v := viper.New()
    v.SetConfigFile(path)
    if filepath.Ext(path) == "" {
        v.SetConfigType("json")
    }
    if err := v.ReadInConfig(); err != nil {
        return err
    }
    c := *out
    if err := v.Unmarshal(&c); err != nil {
        return err
    }
    if c.DBPath == "" {
        c.DBPath = out.DBPath
    }
    if c.SlotKey == "" {
        c.SlotKey = out.SlotKey
    }
    if c.HooksDir == "" {
        c.HooksDir = out.HooksDir
    }
    if c.LogFile == "" {
        c.LogFile = out.LogFile
    }
    c.DBPath = ExpandHome(c.DBPath)
    c.HooksDir = ExpandHome(c.HooksDir)
    c.ExportDir = ExpandHome(c.ExportDir)
    c.LogFile = ExpandHome(c.LogFile)
    *out = c
    return nil
}

// Save writes c to path as indented JSON, creating the parent directory.
func Save(path string, c Config) error {
    if err := EnsureDir(filepath.Dir(path)); err != nil {
        return err
    }
    b, err := json.MarshalIndent(c, "", "  ")
    if err != nil {
        return err
    }
    return os.WriteFile(path, b, 0o644)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) string {
    if p == "~" {
        return UserHome()
    }
    if len(p) > 1 && p[0] == '~' && (p[1] == '/' || p[1] == '\\') {
        return filepath.Join(UserHome(), p[2:])
    }
    return p
}

func UserHome() string {
    if h, err := os.UserHomeDir(); err == nil {
        return h
    }
    if runtime.GOOS == "windows" {
        if h := os.Getenv("USERPROFILE"); h != "" {
            return h
        }
    }
    return "."
}

func EnsureDir(path string) error {
    if path == "" {
        return errors.New("empty path")
    }
    return os.MkdirAll(path, 0o755)
}
