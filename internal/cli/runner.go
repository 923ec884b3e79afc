package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tally/internal/config"
	"github.com/idilsaglam/tally/internal/counter"
	"github.com/idilsaglam/tally/internal/logging"
	"github.com/idilsaglam/tally/internal/store"
	"github.com/idilsaglam/tally/internal/store/jsonstore"
	"github.com/idilsaglam/tally/internal/store/memstore"
	"github.com/idilsaglam/tally/internal/store/sqlitestore"
	"github.com/idilsaglam/tally/internal/ui"
)

const dbFileName = "tally.db"

// Options tune behavior from root flags.
type Options struct {
	ConfigPath string // explicit config file
	Backend    string // overrides store.backend
	Theme      string // overrides ui.theme
	LogLevel   string // overrides log.level

	Stdout, Stderr io.Writer
	// ProgramOptions are passed to the interactive screen.
	ProgramOptions []tea.ProgramOption
}

func (o Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// With no subcommand the counter screen opens.
func Run(args []string, opt Options) int {
	cmd := "open"
	if len(args) > 0 {
		cmd = args[0]
	}
	stdout, stderr := opt.stdout(), opt.stderr()

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(stdout)
		return 0
	case "open", "show", "credits":
		if len(args) > 1 {
			ui.Fail(stderr, "usage: tally "+cmd)
			return 2
		}
	default:
		ui.Fail(stderr, "unknown subcommand: "+cmd)
		fmt.Fprintln(stderr)
		PrintHelp(stderr)
		return 2
	}

	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		ui.Fail(stderr, "config: "+err.Error())
		return 1
	}
	if opt.Backend != "" {
		cfg.Store.Backend = opt.Backend
		if err := cfg.Validate(); err != nil {
			ui.Fail(stderr, err.Error())
			return 2
		}
	}
	if opt.Theme != "" {
		cfg.UI.Theme = opt.Theme
	}
	ui.SetTheme(cfg.UI.Theme)

	lg := logging.Open(cfg.Log.File, cfg.Log.Level, nil)
	defer lg.Close()
	if opt.LogLevel != "" {
		lg.SetLevel(opt.LogLevel)
	}
	log := lg.WithSession().With("cmd", cmd, "backend", cfg.Store.Backend)

	switch cmd {
	case "show":
		return doShow(cfg, log, stdout, stderr)
	case "credits":
		ui.Panel(stdout, creditLines(credits(cfg)))
		return 0
	}
	return doOpen(cfg, log, opt, stdout, stderr)
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `tally - a name and a counter that survive restarts

Usage:
  tally [flags] [subcommand]

Subcommands:
  open               Open the counter screen (default)
  show               Print the stored name and count
  credits            Print the credits

Flags:
  -config <path>     Config file (default $TALLY_CONFIG or ~/.config/tally/config.toml)
  -backend <name>    Store backend: json, sqlite or memory
  -theme <name>      classic, neon or mono
  -log-level <lvl>   debug, info, warn or error

Keys on the counter screen:
  +/c count   r reset   x exit & save   tab edit name   m credits   q quit
`)
}

// openStore opens the configured backend.
func openStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	ns := cfg.Store.Namespace
	switch strings.ToLower(cfg.Store.Backend) {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(filepath.Join(cfg.Store.Dir, dbFileName), ns)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendMemory:
		return memstore.New(), nil
	default:
		s, err := jsonstore.Open(cfg.Store.Dir, ns, jsonstore.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func credits(cfg config.Config) counter.Credits {
	cr := counter.DefaultCredits()
	if cfg.Credits.Title != "" {
		cr.Title = cfg.Credits.Title
	}
	if len(cfg.Credits.Lines) > 0 {
		cr.Lines = cfg.Credits.Lines
	}
	return cr
}

func creditLines(cr counter.Credits) []string {
	lines := []string{ui.Current().Title.Render(cr.Title), ""}
	return append(lines, cr.Lines...)
}

// -------------- subcommand impls ----------------

func doOpen(cfg config.Config, log *slog.Logger, opt Options, stdout, stderr io.Writer) int {
	st, err := openStore(cfg, log)
	if err != nil {
		// Keep going on an in-memory store; nothing will survive the session.
		log.Warn("store unavailable, using memory", "err", err)
		ui.Fail(stderr, "store: "+err.Error()+" (changes will not be kept)")
		st = memstore.New()
	}
	defer st.Close()

	ctrl := counter.New(st, counter.WithLogger(log), counter.WithCredits(credits(cfg)))
	ctrl.Initialize()

	popts := append([]tea.ProgramOption{tea.WithAltScreen()}, opt.ProgramOptions...)
	saved, err := ui.Run(ctrl, popts...)
	if err != nil {
		ui.Fail(stderr, err.Error())
		return 1
	}
	if saved {
		ui.OK(stdout, fmt.Sprintf("saved %q, count %d", ctrl.Name(), ctrl.Count()))
	}
	return 0
}

func doShow(cfg config.Config, log *slog.Logger, stdout, stderr io.Writer) int {
	st, err := openStore(cfg, log)
	if err != nil {
		ui.Fail(stderr, "store: "+err.Error())
		return 1
	}
	defer st.Close()

	ctrl := counter.New(st, counter.WithLogger(log))
	ctrl.Initialize()

	t := ui.Current()
	name := ctrl.Name()
	if name == "" {
		name = t.Muted.Render("(no name)")
	}
	ui.Panel(stdout, []string{
		t.Title.Render("tally") + "  " + t.Muted.Render(cfg.Store.Backend+":"+cfg.Store.Namespace),
		"",
		t.Muted.Render("Name  ") + name,
		t.Muted.Render("Count ") + t.Count.Render(strconv.Itoa(ctrl.Count())),
	})
	return 0
}
