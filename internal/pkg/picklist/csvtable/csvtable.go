// Package csvtable renders a dependency table as CSV text.
package csvtable

import (
	"strings"
	"unicode/utf8"

	"github.com/sfpd/picklist-dependency/internal/pkg/picklist"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

const (
	CRLF = "\r\n"
	LF   = "\n"
)

type config struct {
	terminator string
	delimiter  rune
}

type Option func(c *config)

// WithLF terminates records by "\n" instead of the default "\r\n".
func WithLF() Option {
	return func(c *config) {
		c.terminator = LF
	}
}

// WithDelimiter sets the field delimiter, default is ",".
func WithDelimiter(r rune) Option {
	return func(c *config) {
		c.delimiter = r
	}
}

// Render writes the header [controllingLabel, dependentLabel] and one row per pair, in the table order.
// Records are terminated by CRLF, the last record is not terminated. An empty table results in the header only.
// Only values containing the delimiter, a double quote or a line break are quoted.
func Render(table picklist.DependencyTable, controllingLabel, dependentLabel string, opts ...Option) (string, error) {
	cfg := config{terminator: CRLF, delimiter: ','}
	for _, o := range opts {
		o(&cfg)
	}

	if !validDelimiter(cfg.delimiter) {
		return "", errors.Errorf(`invalid CSV delimiter "%s"`, string(cfg.delimiter))
	}

	var out strings.Builder
	writeRecord(&out, []string{controllingLabel, dependentLabel}, cfg.delimiter)
	for _, row := range table.Rows() {
		out.WriteString(cfg.terminator)
		writeRecord(&out, row, cfg.delimiter)
	}
	return out.String(), nil
}

func writeRecord(out *strings.Builder, record []string, delimiter rune) {
	for i, field := range record {
		if i > 0 {
			out.WriteRune(delimiter)
		}
		if !fieldNeedsQuotes(field, delimiter) {
			out.WriteString(field)
			continue
		}
		out.WriteByte('"')
		out.WriteString(strings.ReplaceAll(field, `"`, `""`))
		out.WriteByte('"')
	}
}

func fieldNeedsQuotes(field string, delimiter rune) bool {
	return strings.ContainsRune(field, delimiter) || strings.ContainsAny(field, "\"\r\n")
}

func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}
