package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

const (
	DefaultRows     = 1000
	DefaultCols     = 26
	DefaultLocale   = "en_US"
	DefaultTimeZone = "Etc/GMT"
)

// Spreadsheet identifies a Google Sheets document and the sheet currently being rendered. The
// sheet fields are updated in place when a new sheet is added.
type Spreadsheet struct {
	ID         string
	SheetID    int64
	SheetTitle string
}

func (s Spreadsheet) String() string {
	return fmt.Sprintf("%v#%v (%v)", s.ID, s.SheetID, s.SheetTitle)
}

// URL returns the shareable link for a document.
func URL(documentID string) (string, error) {
	if documentID == "" {
		return "", ErrDocumentNotSet
	}

	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%v/", documentID), nil
}

// Color converts an HTML colour e.g. "#1565C0" to the API RGB representation.
func Color(html string) (*sheets.Color, error) {
	hex := strings.TrimPrefix(html, "#")
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid colour '%v'", html)
	}

	rgb := [3]float64{}
	for i := range rgb {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid colour '%v' (%w)", html, err)
		}

		rgb[i] = float64(v) / 255.0
	}

	return &sheets.Color{
		Red:             rgb[0],
		Green:           rgb[1],
		Blue:            rgb[2],
		ForceSendFields: []string{"Red", "Green", "Blue"},
	}, nil
}

// Permission describes who a document is shared with. Domain is only used for the 'domain' type
// and EmailAddress only for the 'user' type.
type Permission struct {
	Type         string `yaml:"type"`
	Role         string `yaml:"role"`
	Domain       string `yaml:"domain"`
	EmailAddress string `yaml:"email"`
}

func DomainPermission(domain, role string) Permission {
	return Permission{Type: "domain", Role: role, Domain: domain}
}

func UserPermission(email, role string) Permission {
	return Permission{Type: "user", Role: role, EmailAddress: email}
}

func (p Permission) drive() *drive.Permission {
	permission := drive.Permission{
		Type: p.Type,
		Role: p.Role,
	}

	if p.Type == "domain" && p.Domain != "" {
		permission.Domain = p.Domain
	}

	if p.Type == "user" && p.EmailAddress != "" {
		permission.EmailAddress = p.EmailAddress
	}

	return &permission
}
