package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" default:"1" help:"Run the HTTP API (default)"`
	Migrate MigrateCmd       `cmd:"" help:"Apply the postgres schema and exit"`
	Score   ScoreCmd         `cmd:"" help:"Score a single round offline"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("skullking"),
		kong.Description("Score tracker for Skull King card games"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
