// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

// DebugLogger returns logs as string in tests.
type DebugLogger interface {
	Logger
	ConnectTo(writer io.Writer)
	Truncate()
	AllMessages() string
	AllMessagesTxt() string
	DebugMessages() string
	InfoMessages() string
	WarnMessages() string
	WarnAndErrorMessages() string
	ErrorMessages() string
	CompareJSONMessages(expected string) error
	AssertJSONMessages(t assert.TestingT, expected string, msgAndArgs ...any) bool
}

type debugLogger struct {
	*zapLogger
	all *syncBuffer
	txt *syncBuffer
}

type syncBuffer struct {
	lock    *sync.Mutex
	buffer  *bytes.Buffer
	writers []io.Writer
}

// NewDebugLogger creates a logger which stores all messages in memory.
// JSON lines are available via AllMessages, "LEVEL  message" lines via AllMessagesTxt.
func NewDebugLogger() DebugLogger {
	all := newSyncBuffer()
	txt := newSyncBuffer()

	jsonEncoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	})
	txtEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "message",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "  ",
	})

	core := zapcore.NewTee(
		zapcore.NewCore(jsonEncoder, zapcore.AddSync(all), DebugLevel),
		zapcore.NewCore(txtEncoder, zapcore.AddSync(txt), DebugLevel),
	)

	return &debugLogger{zapLogger: loggerFromZapCore(core), all: all, txt: txt}
}

// ConnectTo copies all next JSON messages also to the writer, useful for debugging a test.
func (l *debugLogger) ConnectTo(writer io.Writer) {
	l.all.connect(writer)
}

func (l *debugLogger) Truncate() {
	l.all.truncate()
	l.txt.truncate()
}

func (l *debugLogger) AllMessages() string {
	return l.all.String()
}

func (l *debugLogger) AllMessagesTxt() string {
	return l.txt.String()
}

func (l *debugLogger) DebugMessages() string {
	return l.filterTxt("DEBUG")
}

func (l *debugLogger) InfoMessages() string {
	return l.filterTxt("INFO")
}

func (l *debugLogger) WarnMessages() string {
	return l.filterTxt("WARN")
}

func (l *debugLogger) WarnAndErrorMessages() string {
	return l.filterTxt("WARN", "ERROR")
}

func (l *debugLogger) ErrorMessages() string {
	return l.filterTxt("ERROR")
}

func (l *debugLogger) CompareJSONMessages(expected string) error {
	return CompareJSONMessages(expected, l.AllMessages())
}

func (l *debugLogger) AssertJSONMessages(t assert.TestingT, expected string, msgAndArgs ...any) bool {
	return AssertJSONMessages(t, expected, l.AllMessages(), msgAndArgs...)
}

func (l *debugLogger) filterTxt(levels ...string) string {
	var out strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(l.txt.String()))
	for scanner.Scan() {
		line := scanner.Text()
		for _, level := range levels {
			if strings.HasPrefix(line, level+"  ") {
				out.WriteString(line)
				out.WriteString("\n")
				break
			}
		}
	}
	return out.String()
}

func newSyncBuffer() *syncBuffer {
	return &syncBuffer{lock: &sync.Mutex{}, buffer: &bytes.Buffer{}}
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	for _, w := range b.writers {
		_, _ = w.Write(p)
	}
	return b.buffer.Write(p)
}

func (b *syncBuffer) String() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buffer.String()
}

func (b *syncBuffer) truncate() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.buffer.Reset()
}

func (b *syncBuffer) connect(w io.Writer) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.writers = append(b.writers, w)
}
