package dependency

import (
	"github.com/spf13/cobra"

	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/cmd/picklist/dependency/export"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/dependencies"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/helpmsg"
)

func Commands(p dependencies.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   `dependency`,
		Short: helpmsg.Read(`picklist/dependency/short`),
		Long:  helpmsg.Read(`picklist/dependency/long`),
	}
	cmd.AddCommand(
		export.Command(p),
	)
	return cmd
}
