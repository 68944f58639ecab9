package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/uhppoted/uhppoted-app-reports/commands"
)

var cli = []commands.Command{
	&commands.VersionCmd,
	&commands.RenderCmd,
	&commands.AddSheetCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = commands.NewHelp(cli)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	commands.Logging(options.Debug)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cmd, err := commands.Parse(cli, help, flag.Args())
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute(&options)
		os.Exit(1)
	}

	if err = cmd.Execute(&options); err != nil {
		log.Fatal().Err(err).Msg(cmd.Name())
	}
}
