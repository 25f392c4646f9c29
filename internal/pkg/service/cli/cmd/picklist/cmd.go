package picklist

import (
	"github.com/spf13/cobra"

	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/cmd/picklist/dependency"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/dependencies"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/helpmsg"
)

func Commands(p dependencies.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   `picklist`,
		Short: helpmsg.Read(`picklist/short`),
		Long:  helpmsg.Read(`picklist/long`),
	}
	cmd.AddCommand(
		dependency.Commands(p),
	)
	return cmd
}
