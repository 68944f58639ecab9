package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const APP = "uhppoted-app-reports"

const (
	SHEETS = "https://www.googleapis.com/auth/spreadsheets"
	DRIVE  = "https://www.googleapis.com/auth/drive"
)

const (
	ENV_WORKDIR     = "UHPPOTED_REPORTS_WORKDIR"
	ENV_CREDENTIALS = "UHPPOTED_REPORTS_CREDENTIALS"
)

type Options struct {
	Debug bool
}

// Command is implemented by every CLI command in the commands list.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Help()
	FlagSet() *flag.FlagSet
	Execute(args ...any) error
}

type command struct {
	workdir     string
	credentials string
	debug       bool
}

func (cmd *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", env(ENV_WORKDIR, cmd.workdir), "Directory for working files (tokens, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", env(ENV_CREDENTIALS, cmd.credentials), "Path for the 'credentials.json' file")

	return flagset
}

func (cmd *command) validate() error {
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	return nil
}

func (cmd *command) tokens() string {
	return filepath.Join(cmd.workdir, ".google")
}

// Parse finds the command named by the first argument and parses the remaining arguments with the
// command flagset. Returns nil if there are no arguments.
func Parse(cli []Command, help Command, args []string) (Command, error) {
	if len(args) == 0 {
		return nil, nil
	}

	var cmd Command
	if args[0] == help.Name() {
		cmd = help
	}

	for _, c := range cli {
		if c.Name() == args[0] {
			cmd = c
			break
		}
	}

	if cmd == nil {
		return nil, fmt.Errorf("invalid command: %v", args[0])
	}

	if err := cmd.FlagSet().Parse(args[1:]); err != nil {
		return nil, err
	}

	return cmd, nil
}

// Logging configures the console logger used by the commands and the report packages.
func Logging(debug bool) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}).
		With().
		Timestamp().
		Logger()

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func parseURL(url string) (string, error) {
	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

// printURL writes the spreadsheet link on a line of its own for scripts that capture the output.
func printURL(w io.Writer, url string) {
	fmt.Fprintln(w, url)
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}

func env(key, defval string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}

	return defval
}

func debugf(format string, args ...any) {
	log.Debug().Msgf(format, args...)
}

func infof(format string, args ...any) {
	log.Info().Msgf(format, args...)
}

func warnf(format string, args ...any) {
	log.Warn().Msgf(format, args...)
}
