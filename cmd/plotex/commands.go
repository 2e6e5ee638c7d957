package main

import (
	"github.com/scott-cotton/cli"
)

func RootCommand() *cli.Command {
	cfg := &RunConfig{}
	opts, err := runOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Run, "plotex").
		WithSynopsis("plotex [opts] scenario").
		WithDescription("plotex explores the reachable-state space of a declared scenario.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runMain(cfg, cc, args)
		})
}
