package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/uhppoted/uhppoted-app-reports/render"
	"github.com/uhppoted/uhppoted-app-reports/spreadsheet"
	"github.com/uhppoted/uhppoted-app-reports/table"
)

var RenderCmd = Render{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		debug:       false,
	},

	file:   "",
	layout: "",
	title:  "",
	sheet:  "",
	domain: "",
	email:  "",
	role:   "reader",
}

type Render struct {
	command
	file    string
	layout  string
	title   string
	sheet   string
	groupBy string
	domain  string
	email   string
	role    string
}

func (cmd *Render) Name() string {
	return "render"
}

func (cmd *Render) Description() string {
	return "Renders a TSV report to a new Google Sheets spreadsheet"
}

func (cmd *Render) Usage() string {
	return "--credentials <file> --file <file> --title <title> [--share-domain <domain> | --share-email <email>]"
}

func (cmd *Render) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] render [options] --file <file> --title <title> --share-domain <domain>\n", APP)
	fmt.Println()
	fmt.Println("  Creates a new Google Sheets spreadsheet, renders the TSV report to it, shares it and prints the spreadsheet link")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    uhppoted-app-reports --debug render --credentials "credentials.json" \`)
	fmt.Println(`                                        --file "sales.tsv" \`)
	fmt.Println(`                                        --title "Quarterly Sales" \`)
	fmt.Println(`                                        --group-by "Region" \`)
	fmt.Println(`                                        --share-domain "example.com"`)
	fmt.Println()
}

func (cmd *Render) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("render")

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV report file")
	flagset.StringVar(&cmd.layout, "layout", cmd.layout, "Optional YAML report layout file")
	flagset.StringVar(&cmd.title, "title", cmd.title, "Spreadsheet title")
	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, fmt.Sprintf("Worksheet title. Defaults to '%v'", render.DefaultSheetTitle))
	flagset.StringVar(&cmd.groupBy, "group-by", cmd.groupBy, "Comma separated list of columns to group the report by")
	flagset.StringVar(&cmd.domain, "share-domain", cmd.domain, "Shares the spreadsheet with everybody in the domain")
	flagset.StringVar(&cmd.email, "share-email", cmd.email, "Shares the spreadsheet with a user")
	flagset.StringVar(&cmd.role, "role", cmd.role, "Role granted to the domain or user (reader, commenter or writer)")

	return flagset
}

func (cmd *Render) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.command.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	l, err := loadLayout(cmd.layout)
	if err != nil {
		return err
	}

	title := first(cmd.title, l.Title)
	if title == "" {
		return fmt.Errorf("--title is a required option")
	}

	permission, err := cmd.permission(l)
	if err != nil {
		return err
	}

	// ... build report
	t, err := loadReport(cmd.file, title, first(cmd.groupBy, strings.Join(l.GroupBy, ",")))
	if err != nil {
		return err
	}

	rules, err := l.rules(t.Headers())
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("Report - file:%s  title:%s  rows:%d  rules:%d", cmd.file, title, len(t.Rows()), len(rules))
	}

	// ... render
	ctx := context.Background()

	opts, err := authorize(ctx, cmd.credentials, cmd.tokens(), SHEETS, DRIVE)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := spreadsheet.NewGoogle(ctx, opts...)
	if err != nil {
		return err
	}

	service := render.NewService(google)
	if sheet := first(cmd.sheet, l.Sheet); sheet != "" {
		service.SheetTitle = sheet
	}

	url, err := service.CreateSpreadsheet(ctx, permission, title, render.NewReport(t, rules...))
	if err != nil {
		return err
	}

	infof("Rendered %v to Google Sheets %v", cmd.file, url)
	printURL(os.Stdout, url)

	return nil
}

func (cmd *Render) permission(l *layout) (spreadsheet.Permission, error) {
	switch {
	case strings.TrimSpace(cmd.domain) != "":
		return spreadsheet.DomainPermission(strings.TrimSpace(cmd.domain), cmd.role), nil

	case strings.TrimSpace(cmd.email) != "":
		return spreadsheet.UserPermission(strings.TrimSpace(cmd.email), cmd.role), nil

	case l.Share != nil:
		return *l.Share, nil

	default:
		return spreadsheet.Permission{}, fmt.Errorf("one of --share-domain or --share-email is required")
	}
}

func loadReport(file string, title string, groupBy string) (*table.Table, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	header, records, err := readTSV(f)
	if err != nil {
		return nil, fmt.Errorf("invalid TSV file %v (%w)", file, err)
	}

	groups := []string{}
	for _, g := range strings.Split(groupBy, ",") {
		if g = clean(g); g != "" {
			groups = append(groups, g)
		}
	}

	return makeTable(title, header, records, groups)
}

func first(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	return ""
}
