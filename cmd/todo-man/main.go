package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"todo-man/internal/app"
	"todo-man/internal/config"
	"todo-man/internal/hooks"
	"todo-man/internal/logging"
	"todo-man/internal/report"
	"todo-man/internal/storage"
	"todo-man/internal/tasks"
	"todo-man/internal/tui"
	"todo-man/internal/version"
	"todo-man/internal/zipper"
)

func main() {
    // Flags
    var (
        cfgPath     string
        dbPath      string
        slotKey     string
        hooksDir    string
        exportDir   string
        logFile     string
        exportArg   string // zip path
        importArg   string // zip or json path
        reportArg   string // .json | .csv | .md | .pdf
        addArg      string
        filterArg   string
        backup      bool
        restore     bool
        debug       bool
        showVersion bool
    )

    flag.StringVar(&cfgPath, "config", config.DefaultPath(), "config file path")
    flag.StringVar(&dbPath, "db", "", "task database file (overrides config)")
    flag.StringVar(&slotKey, "slot", "", "key of the task slot inside the database")
    flag.StringVar(&hooksDir, "hooks-dir", "", "directory containing JS hook files")
    flag.StringVar(&exportDir, "export-dir", "", "default export directory for TUI exports")
    flag.StringVar(&logFile, "log-file", "", "log file for the TUI session")
    flag.StringVar(&exportArg, "export", "", "batch export: write all tasks to <zip-path>")
    flag.StringVar(&importArg, "import", "", "batch import: append tasks from <zip-path> or a JSON task array")
    flag.StringVar(&reportArg, "report", "", "write a report; format from extension: "+strings.Join(report.Formats, ", "))
    flag.StringVar(&addArg, "add", "", "add a task and exit")
    flag.StringVar(&filterArg, "filter", "all", "filter for non-interactive listing: all | active | completed")
    flag.BoolVar(&backup, "backup", false, "snapshot the task database and exit")
    flag.BoolVar(&restore, "restore", false, "pick a database backup to restore")
    flag.BoolVar(&debug, "debug", false, "debug logging")
    flag.BoolVar(&showVersion, "version", false, "print version and exit")
    flag.Parse()

    if showVersion {
        fmt.Println(version.String())
        return
    }

    // Load config
    cfg, created, cfgErr := loadConfig(cfgPath)
    // Merge overrides
    if dbPath != "" {
        cfg.DBPath = config.ExpandHome(dbPath)
    }
    if slotKey != "" {
        cfg.SlotKey = slotKey
    }
    if hooksDir != "" {
        cfg.HooksDir = config.ExpandHome(hooksDir)
    }
    if exportDir != "" {
        cfg.ExportDir = config.ExpandHome(exportDir)
    }
    if logFile != "" {
        cfg.LogFile = config.ExpandHome(logFile)
    }
    if debug {
        cfg.Debug = true
    }
    mode, ok := tasks.ParseFilter(filterArg)
    if !ok {
        fmt.Fprintf(os.Stderr, "invalid -filter %q\n", filterArg)
        os.Exit(2)
    }

    interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
    batch := exportArg != "" || importArg != "" || reportArg != "" || addArg != "" || backup
    if interactive && !batch {
        closeLog, err := logging.Init(cfg.LogFile, cfg.Debug)
        if err != nil {
            fmt.Fprintf(os.Stderr, "warning: log file unavailable: %v\n", err)
            logging.Console(cfg.Debug)
        } else {
            logToFile = true
            defer closeLog()
        }
    } else {
        logging.Console(cfg.Debug)
    }
    if cfgErr != nil {
        log.Warn().Err(cfgErr).Str("path", cfgPath).Msg("failed to load config")
    } else if created {
        log.Info().Str("path", cfgPath).Msg("wrote default config")
    }
    log.Debug().Str("db", cfg.DBPath).Str("slot", cfg.SlotKey).Str("hooks", cfg.HooksDir).Msg("config")

    if restore {
        if err := runRestore(cfg.DBPath); err != nil {
            fatal(err, "restore failed")
        }
        return
    }

    slot, err := storage.Open(cfg.DBPath, cfg.SlotKey)
    if err != nil {
        fatal(err, "open task database")
    }
    defer slot.Close()
    log.Debug().Str("db", slot.Path()).Str("slot", slot.Key()).Msg("opened task database")

    if backup {
        p, err := slot.Backup("")
        if err != nil {
            fatal(err, "backup failed")
        }
        log.Info().Str("db", slot.Path()).Str("backup", p).Msg("backup written")
        fmt.Printf("backup of %s written to %s\n", slot.Path(), p)
        return
    }

    if batch || !interactive {
        env, _ := hooks.LoadDir(cfg.HooksDir)
        ctrl, err := app.New(slot, app.WithHooks(env))
        if err != nil {
            slot.Close()
            fatal(err, "failed to load tasks")
        }
        if err := runBatch(ctrl, batchArgs{add: addArg, importPath: importArg, exportPath: exportArg, reportPath: reportArg}); err != nil {
            slot.Close()
            fatal(err, "batch operation failed")
        }
        if !batch {
            ctrl.SelectFilter(mode)
            printRows(os.Stdout, ctrl)
        }
        return
    }

    p := tea.NewProgram(tui.New(cfg, slot))
    final, err := p.Run()
    if err != nil {
        slot.Close()
        fatal(err, "tui error")
    }
    if fm, ok := final.(interface{ Err() error }); ok && fm.Err() != nil {
        slot.Close()
        fatal(fm.Err(), "failed to load tasks")
    }
}

// loadConfig reads path over the defaults. A missing file is created with
// the defaults so users have something to edit; created reports that.
func loadConfig(path string) (cfg config.Config, created bool, err error) {
    cfg = config.Default()
    err = config.Load(path, &cfg)
    if err == nil || !os.IsNotExist(err) { return cfg, false, err }
    if err := config.Save(path, cfg); err != nil { return cfg, false, err }
    return cfg, true, nil
}

type batchArgs struct {
    add        string
    importPath string
    exportPath string
    reportPath string
}

// runBatch applies the non-interactive operations in a fixed order:
// add, import, then export and report of the resulting list.
func runBatch(ctrl *app.Controller, a batchArgs) error {
    if a.add != "" {
        added, err := ctrl.Submit(a.add)
        if err != nil { return err }
        if !added { return errors.New("task text is empty") }
        fmt.Printf("added %d\n", ctrl.Tasks()[len(ctrl.Tasks())-1].ID)
    }
    if a.importPath != "" {
        list, m, err := zipper.ReadArchive(a.importPath)
        if err != nil { return fmt.Errorf("import %s: %w", a.importPath, err) }
        n, err := ctrl.Import(list)
        if err != nil { return err }
        log.Info().Str("export", m.ExportID).Int("tasks", n).Msg("imported")
        fmt.Printf("imported %d tasks from %s\n", n, a.importPath)
    }
    if a.exportPath != "" {
        m, err := zipper.ExportTasksWithProgress(ctrl.Tasks(), a.exportPath, func(cur, total int) {
            log.Debug().Int("entry", cur).Int("entries", total).Msg("export progress")
        })
        if err != nil { return fmt.Errorf("export: %w", err) }
        fmt.Printf("exported %d tasks -> %s\n", m.Count, a.exportPath)
    }
    if a.reportPath != "" {
        if err := report.WriteFile(ctrl.Tasks(), a.reportPath); err != nil { return fmt.Errorf("report: %w", err) }
        fmt.Printf("report written to %s\n", a.reportPath)
    }
    return nil
}

// printRows lists the rows of the controller's current view, one per line.
func printRows(w io.Writer, ctrl *app.Controller) {
    v := ctrl.View()
    for _, r := range v.Rows {
        box := " "
        if r.Completed { box = "x" }
        fmt.Fprintf(w, "%d\t[%s] %s\n", r.ID, box, r.Text)
    }
    fmt.Fprintf(w, "%d tasks, %d active, %d completed\n", v.Counts.Total, v.Counts.Active, v.Counts.Completed)
}

func runRestore(dbPath string) error {
    infos, err := storage.ListBackups(dbPath)
    if err != nil { return err }
    final, err := tea.NewProgram(tui.NewRestore(infos, dbPath)).Run()
    if err != nil { return err }
    suffix := final.(tui.RestoreModel).Selected()
    if suffix == "" { return nil }
    if err := storage.RestoreFromBackup(dbPath, suffix); err != nil { return err }
    fmt.Printf("restored %s from backup %s\n", dbPath, suffix)
    return nil
}

// logToFile is set when records go to the log file and not the terminal.
var logToFile bool

func fatal(err error, msg string) {
    log.Error().Err(err).Msg(msg)
    if logToFile {
        fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
    }
    os.Exit(1)
}
