package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"titleblock/internal/adapters/tui"
	"titleblock/internal/config"
	"titleblock/internal/logging"
	"titleblock/internal/ports"
	"titleblock/internal/wire"
)

func main() {
	configFlag := flag.String("config", "", "configuration file")
	simulateFlag := flag.String("simulate", "", "drive a simulated CAD application loaded from this fixture")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: titleblock [flags] <folder>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *configFlag, *simulateFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(folder, configPath, fixture string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// the terminal belongs to the UI
	logger, err := logging.NewFileLogger(cfg.Log, cfg.Log.OutputPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	env, err := wire.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := env.Close(); err != nil {
			logger.Warn("failed to close session", zap.Error(err))
		}
	}()

	cad, err := env.Connect(fixture)
	if err != nil {
		return err
	}

	bridge := tui.NewBridge()
	runCmd, err := env.NewRun(context.Background(), folder, cad.Connector, wire.RunOptions{
		Observers: []ports.RunObserver{bridge},
		Confirmer: bridge,
	})
	if err != nil {
		return err
	}

	app := tui.NewApp(folder, runCmd, env.MapTable, bridge, logger.Named("tui"))
	p := tea.NewProgram(app, tea.WithAltScreen())
	bridge.Attach(p)

	if _, err := p.Run(); err != nil {
		return err
	}
	app.Wait()

	return cad.Flush()
}
