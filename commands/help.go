package commands

import (
	"flag"
	"fmt"
)

// Help is the 'help' command. It lists the available commands or displays the long form help for
// a single command.
type Help struct {
	cli     []Command
	flagset *flag.FlagSet
}

func NewHelp(cli []Command) *Help {
	return &Help{
		cli:     cli,
		flagset: flag.NewFlagSet("help", flag.ExitOnError),
	}
}

func (h *Help) Name() string {
	return "help"
}

func (h *Help) Description() string {
	return "Displays the help information for a command"
}

func (h *Help) Usage() string {
	return "<command>"
}

func (h *Help) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s help <command>\n", APP)
	fmt.Println()
	fmt.Println("  Displays the help information for a command")
	fmt.Println()
}

func (h *Help) FlagSet() *flag.FlagSet {
	return h.flagset
}

func (h *Help) Execute(args ...any) error {
	if h.flagset.NArg() > 0 {
		name := h.flagset.Arg(0)
		if name == h.Name() {
			h.Help()
			return nil
		}

		for _, c := range h.cli {
			if c.Name() == name {
				c.Help()
				return nil
			}
		}

		return fmt.Errorf("invalid command: %v", name)
	}

	h.usage()

	return nil
}

func (h *Help) usage() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] <command> [options]\n", APP)
	fmt.Println()
	fmt.Println("  Commands:")
	fmt.Println()

	for _, c := range h.cli {
		fmt.Printf("    %-12s %s\n", c.Name(), c.Description())
	}

	fmt.Printf("    %-12s %s\n", h.Name(), h.Description())
	fmt.Println()
	fmt.Println("  Options:")
	fmt.Println()
	fmt.Println("    --debug      Displays internal information for diagnosing errors")
	fmt.Println()
}
