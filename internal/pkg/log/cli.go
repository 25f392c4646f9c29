// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCliLogger creates the logger for the command line interface.
//   - debug: stdout, only if verbose == true
//   - info: stdout
//   - warn, error: stderr
//   - all levels: log file, if any
func NewCliLogger(stdout io.Writer, stderr io.Writer, logFile *File, logFormat LogFormat, verbose bool) Logger {
	var cores []zapcore.Core

	// Log to file
	if logFile != nil {
		cores = append(cores, fileCore(logFile))
	}

	// Log to stdout
	cores = append(cores, stdoutCore(stdout, logFormat, verbose))

	// Log to stderr
	cores = append(cores, stderrCore(stderr, logFormat, verbose))

	return loggerFromZapCore(zapcore.NewTee(cores...))
}

func stdoutCore(stdout io.Writer, logFormat LogFormat, verbose bool) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		if l == DebugLevel {
			return verbose
		}
		return l == InfoLevel
	})
	return zapcore.NewCore(consoleEncoder(logFormat, verbose), zapcore.AddSync(stdout), levels)
}

func stderrCore(stderr io.Writer, logFormat LogFormat, verbose bool) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= WarnLevel
	})
	return zapcore.NewCore(consoleEncoder(logFormat, verbose), zapcore.AddSync(stderr), levels)
}

func consoleEncoder(logFormat LogFormat, verbose bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		MessageKey:  "message",
		EncodeLevel: zapcore.CapitalLevelEncoder,
	}

	// Level prefix is printed only in the verbose mode
	if verbose || logFormat == LogFormatJSON {
		cfg.LevelKey = "level"
	}

	if logFormat == LogFormatJSON {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}
