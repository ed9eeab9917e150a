package main

import (
	"github.com/alecthomas/kong"
)

var version = "dev"

// Globals are flags shared by every subcommand
type Globals struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"bluff.hcl" type:"path" help:"HCL config file (defaults apply when missing)"`
	Seed    int64            `help:"RNG seed, overrides the config (0 keeps the config value)"`
	Debug   bool             `help:"Enable debug logging"`
}

type CLI struct {
	Globals

	Play     PlayCmd     `cmd:"" default:"1" help:"Play Bluff against computer players"`
	Simulate SimulateCmd `cmd:"" help:"Run bot-only matches and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bluff"),
		kong.Description("The Bluff card game in your terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
