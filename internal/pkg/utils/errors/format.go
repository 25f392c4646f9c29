package errors

import (
	"bufio"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	Indent = "  "
	Bullet = "- "
)

type FormatConfig struct {
	AsSentences bool
	WithUnwrap  bool
}

type FormatOption func(c *FormatConfig)

// FormatAsSentences capitalizes each message and terminates it with a dot.
func FormatAsSentences() FormatOption {
	return func(c *FormatConfig) {
		c.AsSentences = true
	}
}

// FormatWithUnwrap includes errors wrapped by Wrap/Wrapf in the output.
func FormatWithUnwrap() FormatOption {
	return func(c *FormatConfig) {
		c.WithUnwrap = true
	}
}

// Format error to a string, nested and multi errors are rendered as a bullet list.
func Format(err error, opts ...FormatOption) string {
	cfg := FormatConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	w := &writer{config: cfg}
	w.writeError(0, err)
	return w.out.String()
}

type writer struct {
	config FormatConfig
	out    strings.Builder
}

func (w *writer) writeError(level int, err error) {
	if err == nil {
		panic(Errorf("error cannot be nil"))
	}

	// nolint:errorlint
	switch v := err.(type) {
	case nestedErrorGetter:
		w.writeNested(level, v.MainError(), v.WrappedErrors())
	case multiErrorGetter:
		w.writeList(level, v.WrappedErrors())
	case *wrappedError:
		w.writeMessage(level, v.msg)
		if w.config.WithUnwrap && v.cause != nil {
			w.write(fmt.Sprintf(" (%T):\n", v))
			w.write(strings.Repeat(Indent, level))
			w.write(Bullet)
			w.writeError(level+1, v.cause)
		}
	default:
		w.writeMessage(level, v.Error())
	}
}

func (w *writer) writeNested(level int, main error, errs []error) {
	mainWriter := &writer{config: w.config}
	mainWriter.writeError(level, main)
	mainStr := mainWriter.out.String()
	if len(errs) == 0 {
		w.write(mainStr)
		return
	}

	// Main message becomes a prefix
	mainStr = strings.TrimRight(mainStr, ".,:") + ":"
	subWriter := &writer{config: w.config}
	subWriter.writeList(level, errs)
	subStr := subWriter.out.String()

	// Break the line, if there are more errors or the message is long
	w.write(mainStr)
	if len(errs) > 1 || len(mainStr)+len(subStr) > 60 || strings.Contains(subStr, "\n") {
		w.write("\n")
		if len(errs) == 1 {
			w.write(strings.Repeat(Indent, level))
			w.write(Bullet)
			w.writeError(level+1, errs[0])
		} else {
			w.writeList(level, errs)
		}
	} else {
		w.write(" ")
		w.write(subStr)
	}
}

func (w *writer) writeList(level int, errs []error) {
	indent := len(errs) > 1
	last := len(errs) - 1
	for i, err := range errs {
		if indent {
			w.write(strings.Repeat(Indent, level))
			w.write(Bullet)
		}
		w.writeError(level+1, err)
		if i != last {
			w.write("\n")
		}
	}
}

func (w *writer) writeMessage(level int, msg string) {
	if w.config.AsSentences {
		msg = toSentence(msg)
	}

	// Align all lines of a multi-line message
	scanner := bufio.NewScanner(strings.NewReader(msg))
	scanner.Scan()
	w.write(scanner.Text())
	for scanner.Scan() {
		w.write("\n")
		w.write(strings.Repeat(Indent, level))
		w.write(scanner.Text())
	}
}

func (w *writer) write(s string) {
	_, _ = w.out.WriteString(s)
}

func toSentence(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msg
	}

	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") && !strings.HasSuffix(msg, ":") && !strings.HasSuffix(msg, "?") && !strings.HasSuffix(msg, "!") {
		msg += "."
	}
	return msg
}
