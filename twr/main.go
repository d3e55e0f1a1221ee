package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/twr/cmd"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Local overrides (log level, default file paths) live in a .env file.
	godotenv.Load()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && os.Getenv("LOG_LEVEL") != "" {
		zerolog.SetGlobalLevel(level)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion answers shell completion requests and exits, or returns
// immediately on a normal run.
func completion() {
	files := map[string]complete.Predictor{
		"ledger-file":        predict.Files("*.tsv"),
		"store-file":         predict.Files("*.db"),
		"reporting-currency": predict.Set{"CAD", "USD"},
		"foreign-currency":   predict.Set{"CAD", "USD"},
	}
	completions := &complete.Command{
		Flags: files,
		Sub: map[string]*complete.Command{
			"fetch":   {Flags: files},
			"value":   {Flags: files},
			"returns": {Flags: files},
			"twr":     {Flags: files},
			"chart":   {Flags: files},
		},
	}
	completions.Complete("twr")
}
