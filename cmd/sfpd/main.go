package main

import (
	"context"
	"os"

	"github.com/sfpd/picklist-dependency/internal/pkg/env"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/cmd"
)

func main() {
	// Run command
	root := cmd.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, env.FromOs())
	root.SetContext(context.Background())
	os.Exit(root.Execute())
}
