package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"geoverlay/internal/canvas"
	"geoverlay/internal/config"
	"geoverlay/internal/feed"
	"geoverlay/internal/logging"
	"geoverlay/internal/marker"
	"geoverlay/internal/tui"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "geoverlay: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("geoverlay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", config.DefaultPath, "path to TOML config")
	dump := fs.Bool("dump", false, "apply descriptors without a terminal and print the resulting overlays as YAML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if fs.NArg() > 0 {
		cfg.Descriptors = fs.Arg(0)
	}
	if *dump {
		return dumpOverlays(cfg, stdin, stdout, stderr)
	}

	log, closer, err := logging.New("geoverlay", cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	c := canvas.New(cfg.PanePrefix)
	deps := tui.Deps{
		Store:  marker.NewStore(marker.NewContext(c, cfg.CellSize), log),
		Canvas: c,
		Log:    log,
	}
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}
	if cfg.FollowStdin {
		// stdin carries descriptors, so keys come from the terminal directly
		deps.Feed = feed.NewDecoder(stdin)
		opts = append(opts, tea.WithInputTTY())
	}

	var m tea.Model
	if cfg.Descriptors != "" {
		m = tui.NewWithPath(deps, cfg.Descriptors)
	} else {
		m = tui.New(deps)
	}
	log.Info().Str("descriptors", cfg.Descriptors).Bool("follow_stdin", cfg.FollowStdin).Float64("cell_size", cfg.CellSize).Msg("starting")
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return err
	}
	log.Info().Msg("exiting")
	return nil
}
