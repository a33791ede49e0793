package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/evjen/blogbuilder/cmd/blogbuilder/commands"
	"github.com/evjen/blogbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("blogbuilder"),
		kong.Description("Static blog site generator: Markdown in, HTML out."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, cli); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
