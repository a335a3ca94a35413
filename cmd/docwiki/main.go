package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/wallstop/docwiki/cmd/docwiki/commands"
	derrors "github.com/wallstop/docwiki/internal/errors"
	"github.com/wallstop/docwiki/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Must(&cli,
		kong.Name("docwiki"),
		kong.Description("Sync a MkDocs docs tree into a GitHub wiki and validate the result."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	adapter := derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
	adapter.HandleError(ctx.Run(&commands.Global{Logger: slog.Default(), Out: os.Stdout}, &cli))
}
