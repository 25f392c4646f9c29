// Package helpmsg contains short and long help texts of the CLI commands.
package helpmsg

import (
	"embed"
	"strings"

	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

//go:embed msg/*
var msgs embed.FS

// Read returns the help message by its path without extension, for example "picklist/dependency/export/short".
func Read(path string) string {
	content, err := msgs.ReadFile("msg/" + path + ".txt")
	if err != nil {
		panic(errors.Errorf(`cannot read help message "%s": %w`, path, err))
	}
	return strings.TrimRight(string(content), "\n")
}
