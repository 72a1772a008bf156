package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/pepystats/pkg/downloads"
	"github.com/matzehuels/pepystats/pkg/errors"
)

// Format is a table output format.
type Format string

// Supported formats.
const (
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "md"
	FormatCSV      Format = "csv"
)

// Formats lists the accepted --fmt values.
var Formats = []Format{FormatPlain, FormatMarkdown, FormatCSV}

// ParseFormat validates s. "markdown" is accepted as an alias for "md".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPlain, FormatMarkdown, FormatCSV:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	case "":
		return FormatPlain, nil
	default:
		return "", errors.Argument("invalid format %q (must be plain, md or csv)", s)
	}
}

// Render returns rows in format f.
func Render(rows downloads.Rows, f Format) (string, error) {
	switch f {
	case FormatPlain:
		return Plain(rows)
	case FormatMarkdown:
		return Markdown(rows), nil
	case FormatCSV:
		return CSV(rows)
	default:
		return "", errors.Argument("invalid format %q", f)
	}
}

// Write renders rows to w. Plain and Markdown output gets a trailing
// newline; CSV is written as is, so empty CSV output writes nothing.
func Write(w io.Writer, rows downloads.Rows, f Format) error {
	s, err := Render(rows, f)
	if err != nil {
		return err
	}
	if f != FormatCSV {
		s += "\n"
	}
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
