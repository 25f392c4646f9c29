// Package cli contains shared parts of the command line interface.
package cli

import (
	"bytes"
	"context"
	"runtime/debug"
	"text/template"

	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

const userFriendlyPanicTmpl = `
---------------------------------------------------
The picklist dependency CLI had a problem and crashed.

To help us diagnose the problem you can send us a crash report.

{{ if .LogFile -}}
We have generated a log file at "{{.LogFile}}".

Please open an issue and include the log file as an attachment.
{{- else -}}
Please run the command again with the flag "--log-file <path>" to generate a log file.

Then please open an issue and include the log file as an attachment.
{{- end }}

The log file does not contain the access token.

Thank you kindly!`

// ProcessPanic logs the panic and returns the exit code.
func ProcessPanic(ctx context.Context, err any, logger log.Logger, logFilePath string) int {
	logger.Debugf(ctx, "Unexpected panic: %s", err)
	logger.Debugf(ctx, "Trace:\n%s", string(debug.Stack()))
	logger.Info(ctx, panicMessage(logFilePath))
	return 1
}

func panicMessage(logFile string) string {
	tmpl, err := template.New("panicMsg").Parse(userFriendlyPanicTmpl)
	if err != nil {
		panic(errors.Errorf("cannot parse panic template: %w", err))
	}

	var output bytes.Buffer
	if err := tmpl.Execute(&output, struct{ LogFile string }{logFile}); err != nil {
		panic(errors.Errorf("cannot render panic template: %w", err))
	}

	return output.String()
}
