package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"quoridor/config"
	"quoridor/experiments"
	"quoridor/shell"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.Debug)

	var err error
	switch cfg.Mode {
	case config.ModePlay:
		err = play(cfg)
	case config.ModeBench:
		err = bench(cfg)
	case config.ModePresets:
		err = config.WritePresets(os.Stdout, cfg.Presets)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", cfg.Mode).Msg("quoridor failed")
	}
}

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("debug logging is on")
}

func play(cfg *config.Config) error {
	sc, err := shell.NewShellController(cfg)
	if err != nil {
		return err
	}
	sc.Loop()
	return nil
}

func bench(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := experiments.NewBenchmark(cfg).Run(ctx, experiments.Matchups(experiments.DefaultTierPairs))
	if err != nil {
		return err
	}
	if err := report.Print(os.Stdout); err != nil {
		return err
	}
	dir, err := report.Save(ctx, cfg.OutDir, cfg.SQLitePath)
	if err != nil {
		return err
	}
	log.Info().Msgf("results written to %s", dir)
	return nil
}
