package root

import (
	"github.com/artuross/watchexpr/internal/commands/parse"
	"github.com/artuross/watchexpr/internal/commands/repl"
	cli "github.com/urfave/cli/v2"
)

func NewCommand() *cli.App {
	return &cli.App{
		Name:  "watchexpr",
		Usage: "Parses debugger watch expressions.",
		Commands: []*cli.Command{
			parse.NewCommand(),
			repl.NewCommand(),
		},
	}
}
