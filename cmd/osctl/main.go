// Command osctl evaluates order snapshots and sends occurrences from the terminal.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	applogger "field-service/pkg/logger"
)

type Globals struct {
	LogLevel string `help:"Log level." default:"warn" enum:"debug,info,warn,error" env:"LOG_LEVEL"`

	out    io.Writer
	logger *zap.Logger
}

type CLI struct {
	Globals

	Resolve ResolveCmd `cmd:"" help:"List the actions a technician may take on an order snapshot file."`
	Execute ExecuteCmd `cmd:"" help:"Send one occurrence to the field-service API."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("osctl"),
		kong.Description("Order action tooling for the field-service API."),
		kong.UsageOnError(),
	)

	cli.out = os.Stdout
	cli.logger = applogger.NewLogger(cli.LogLevel, "")
	defer func() { _ = cli.logger.Sync() }()

	kctx.FatalIfErrorf(kctx.Run(&cli.Globals))
}
