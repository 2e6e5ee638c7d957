package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"
)

// RunConfig holds every flag of the run command, following
// cmd/o/configs.go's MainConfig: struct-tagged simple flags handled by
// cli.StructOpts, and comma-list / repeatable flags handled by an
// explicit FuncOpt appended afterward, the same split as envOptTypeFunc
// in cmd/o/commands.go.
type RunConfig struct {
	Run *cli.Command

	ShowMed  bool `cli:"name=m aliases=showmed desc='include intermediate states'"`
	ShowIn   bool `cli:"name=showin desc='print in-edges'"`
	ShowOut  bool `cli:"name=showout desc='print out-edges'"`
	ShowAll  bool `cli:"name=a aliases=showall desc='show intermediates and all edges'"`
	Diff     bool `cli:"name=d aliases=diff desc='print each state as a delta from the meet of all results'"`
	Patch    bool `cli:"name=j aliases=jsonpatch desc='print each state as an RFC 6902 JSON patch from the meet of all results'"`
	Count    bool `cli:"name=c aliases=count desc='print only the summary counts'"`
	NoOpt    bool `cli:"name=noopt desc='disable the improve/change action partition'"`
	AllTests bool `cli:"name=T aliases=alltest desc='run every declared test'"`
	Gops     bool `cli:"name=gops desc='start the gops diagnostic agent before running'"`

	GraphFile string `cli:"name=graph desc='emit a Graphviz dot file' "`

	Starts      []string
	StartWith   []string
	Block       []string
	Withhold    []string
	Tests       []string
	Filter      []string
	History     []string
	GenLimit    int
	genLimitSet bool
}

func (cfg *RunConfig) listOpt(dst *[]string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			*dst = append(*dst, part)
		}
		return v, nil
	})
}

func (cfg *RunConfig) genLimitOpt() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: --genlimit: %w", cli.ErrUsage, err)
		}
		cfg.GenLimit = n
		cfg.genLimitSet = true
		return n, nil
	})
}

func runOpts(cfg *RunConfig) ([]*cli.Opt, error) {
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "s",
			Aliases:     []string{"start"},
			Description: "starting state names (default Start)",
			Type:        cli.NamedFuncOpt(cfg.listOpt(&cfg.Starts), "(name[,name...])"),
		},
		&cli.Opt{
			Name:        "startwith",
			Description: "boolean qualities added to every starting state",
			Type:        cli.NamedFuncOpt(cfg.listOpt(&cfg.StartWith), "(quality[,quality...])"),
		},
		&cli.Opt{
			Name:        "block",
			Description: "actions forbidden for this run",
			Type:        cli.NamedFuncOpt(cfg.listOpt(&cfg.Block), "(action[,action...])"),
		},
		&cli.Opt{
			Name:        "withhold",
			Description: "actions held out of the first pass, re-enabled against the non-trumped survivors",
			Type:        cli.NamedFuncOpt(cfg.listOpt(&cfg.Withhold), "(action[,action...])"),
		},
		&cli.Opt{
			Name:        "t",
			Aliases:     []string{"test"},
			Description: "run named tests",
			Type:        cli.NamedFuncOpt(cfg.listOpt(&cfg.Tests), "(test[,test...])"),
		},
		&cli.Opt{
			Name:        "f",
			Aliases:     []string{"filter"},
			Description: "retain only states containing the given quality",
			Type:        cli.NamedFuncOpt(cfg.listOpt(&cfg.Filter), "(quality[,quality...])"),
		},
		&cli.Opt{
			Name:        "H",
			Aliases:     []string{"history"},
			Description: "retain only states whose history includes the given action",
			Type:        cli.NamedFuncOpt(cfg.listOpt(&cfg.History), "(action[,action...])"),
		},
		&cli.Opt{
			Name:        "genlimit",
			Description: "override the generation limit (default 10000)",
			Type:        cli.NamedFuncOpt(cfg.genLimitOpt(), "(n)"),
		},
	)
	return opts, nil
}
