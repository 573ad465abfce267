package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"gridsearch/config"
	"gridsearch/engine"
	"gridsearch/experiments"
	"gridsearch/pathfinder"
	"gridsearch/server"
)

func runPath(args []string) error {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	scenarioPath := fs.String("scenario", "", "Scenario file with the grid layout")
	heuristic := fs.String("heuristic", "euclidean", "Heuristic: euclidean, manhattan or zero")
	steps := fs.Bool("steps", false, "Log every expansion")
	configPath := fs.String("config", "", "Config file for logging settings")
	fs.Parse(args)

	if *scenarioPath == "" {
		return errors.New("-scenario is required")
	}
	if _, err := loadConfig(*configPath); err != nil {
		return err
	}

	scenario, err := config.LoadScenario(*scenarioPath)
	if err != nil {
		return err
	}
	g, err := scenario.Grid()
	if err != nil {
		return err
	}
	h, err := pathfinder.HeuristicOption(*heuristic)
	if err != nil {
		return err
	}

	opts := []pathfinder.Option{h}
	if *steps {
		opts = append(opts, pathfinder.WithStepHook(func(s pathfinder.Step) {
			log.Info().Msgf("expanded %v (#%d), frontier %d", s.Current, s.Expanded, s.FrontierLen)
		}))
	}

	res, err := pathfinder.FindPath(g, g.Start(), g.Goal(), opts...)
	if err != nil {
		return err
	}
	path, err := res.Path()
	if err != nil {
		return err
	}
	cost, _ := res.Cost()

	g.MarkPath(path)
	if err := g.Render(os.Stdout); err != nil {
		return err
	}
	fmt.Printf("%s: %d steps, cost %g, %d expansions\n", scenario.Name, len(path), cost, res.Expanded)
	if !res.Admissible {
		fmt.Println("warning: the heuristic may overestimate on this grid, the path may not be optimal")
	}
	return nil
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (defaults when empty)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	state, err := cfg.State()
	if err != nil {
		return err
	}
	policy, err := engine.NewPolicy(cfg.Agent(), cfg.Game.Seed)
	if err != nil {
		return err
	}

	fmt.Print(state)
	e := engine.Local(state, policy, engine.NewRandomPolicy(cfg.Game.Seed),
		engine.WithMaxTurns(cfg.Game.MaxTurns), engine.WithScenario(cfg.Game.Name))
	outcome, gameMetric, _ := e.Run(ctx)

	fmt.Print(e.State)
	fmt.Printf("%s after %d turns, score %g\n", outcome, gameMetric.Turns, gameMetric.Score)
	return nil
}

func runExperiment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (defaults when empty)")
	games := fs.Int("games", experiments.NumGames, "Games per agent config")
	out := fs.String("out", "results", "Directory for the CSV files, empty to skip writing")
	sweep := fs.Int("sweep", 0, "Sweep the configured algorithm over depths 1..N instead of comparing variants")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	name := "variants"
	configs := experiments.VariantConfigs(cfg.Search.Depth, cfg.Search.Evaluation, cfg.Search.Timeout)
	if *sweep > 0 {
		name = "depth_sweep"
		configs = experiments.DepthConfigs(cfg.Search.Algorithm, cfg.Search.Evaluation, *sweep)
	}

	scenarios := []experiments.Scenario{{Name: cfg.Game.Name, Layout: cfg.Game.Layout}}
	_, err = experiments.Run(ctx, name, configs, scenarios, experiments.Options{
		Games:    *games,
		Seed:     cfg.Game.Seed,
		MaxTurns: cfg.Game.MaxTurns,
		OutDir:   *out,
	})
	return err
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (defaults when empty)")
	addr := fs.String("addr", "", "Listen address, overrides the config")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	return server.New(cfg).Run(ctx)
}
