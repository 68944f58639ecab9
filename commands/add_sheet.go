package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/uhppoted/uhppoted-app-reports/render"
	"github.com/uhppoted/uhppoted-app-reports/spreadsheet"
)

var AddSheetCmd = AddSheet{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		debug:       false,
	},

	url:    "",
	file:   "",
	layout: "",
	sheet:  "",
}

type AddSheet struct {
	command
	url     string
	file    string
	layout  string
	sheet   string
	groupBy string
}

func (cmd *AddSheet) Name() string {
	return "add-sheet"
}

func (cmd *AddSheet) Description() string {
	return "Renders a TSV report to a new worksheet in an existing Google Sheets spreadsheet"
}

func (cmd *AddSheet) Usage() string {
	return "--credentials <file> --url <url> --file <file>"
}

func (cmd *AddSheet) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] add-sheet [options] --url <URL> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Adds a worksheet to an existing Google Sheets spreadsheet and renders the TSV report to it")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    uhppoted-app-reports add-sheet --credentials "credentials.json" \`)
	fmt.Println(`                                   --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                                   --sheet "Q3" \`)
	fmt.Println(`                                   --file "sales.tsv"`)
	fmt.Println()
}

func (cmd *AddSheet) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("add-sheet")

	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV report file")
	flagset.StringVar(&cmd.layout, "layout", cmd.layout, "Optional YAML report layout file")
	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, "Title for the new worksheet. Defaults to '<yyyy-mm-dd HHmmss>'")
	flagset.StringVar(&cmd.groupBy, "group-by", cmd.groupBy, "Comma separated list of columns to group the report by")

	return flagset
}

func (cmd *AddSheet) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.command.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	documentID, err := parseURL(cmd.url)
	if err != nil {
		return err
	}

	l, err := loadLayout(cmd.layout)
	if err != nil {
		return err
	}

	sheet := sheetTitle(cmd.sheet, l.Sheet, time.Now())

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  sheet:%s", documentID, sheet)
	}

	// ... build report
	t, err := loadReport(cmd.file, first(l.Title, sheet), first(cmd.groupBy, strings.Join(l.GroupBy, ",")))
	if err != nil {
		return err
	}

	rules, err := l.rules(t.Headers())
	if err != nil {
		return err
	}

	// ... render
	ctx := context.Background()

	opts, err := authorize(ctx, cmd.credentials, cmd.tokens(), SHEETS)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := spreadsheet.NewGoogle(ctx, opts...)
	if err != nil {
		return err
	}

	url, err := render.NewService(google).AddSheet(ctx, documentID, sheet, render.NewReport(t, rules...))
	if err != nil {
		return err
	}

	infof("Rendered %v to worksheet '%v' of Google Sheets %v", cmd.file, sheet, url)
	printURL(os.Stdout, url)

	return nil
}

// sheetTitle returns the worksheet title from the command line, else the layout, else a timestamp.
func sheetTitle(name string, layout string, now time.Time) string {
	return first(name, layout, now.Format("2006-01-02 150405"))
}
