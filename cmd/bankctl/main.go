// Command bankctl inspects and maintains the stored bank data: backups,
// restores, storage usage and statements.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/josh-kwaku/securebank/internal/logging"
)

var (
	currencyCode = flag.String("currency", "INR", "ISO 4217 code used to display amounts")
	logLevel     = flag.String("log-level", "warn", "log level (debug, info, warn, error)")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&usersCmd{}, "inspect")
	commander.Register(&statementCmd{}, "inspect")
	commander.Register(&statsCmd{}, "inspect")

	commander.Register(&exportCmd{}, "backup")
	commander.Register(&importCmd{}, "backup")
	commander.Register(&clearCmd{}, "backup")

	flag.Parse()
	logging.Init("bankctl", *logLevel, "development", os.Stderr)
	os.Exit(int(commander.Execute(context.Background())))
}
