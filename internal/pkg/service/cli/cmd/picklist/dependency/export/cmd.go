package export

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sfpd/picklist-dependency/internal/pkg/artifact/s3mirror"
	"github.com/sfpd/picklist-dependency/internal/pkg/encoding/json"
	"github.com/sfpd/picklist-dependency/internal/pkg/env"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/picklist"
	"github.com/sfpd/picklist-dependency/internal/pkg/salesforce"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/cmdconfig"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/dependencies"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/helpmsg"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/common/configmap"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
	exportOp "github.com/sfpd/picklist-dependency/pkg/lib/operation/picklist/dependency/export"
)

type Flags struct {
	TargetOrg   configmap.Value[string] `configKey:"target-org" configShorthand:"u" configUsage:"username or alias of the target org"`
	Dependent   configmap.Value[string] `configKey:"dependent" configShorthand:"d" configUsage:"dependent picklist field, eg. \"Case.SubStatus__c\""`
	OutputDir   configmap.Value[string] `configKey:"output-dir" configShorthand:"f" configUsage:"existing directory to write the CSV file to"`
	InstanceURL configmap.Value[string] `configKey:"instance-url" configUsage:"instance URL of the target org, overrides the state directory"`
	AccessToken configmap.Value[string] `configKey:"access-token" configUsage:"access token of the target org, overrides the state directory"`
	APIVersion  configmap.Value[string] `configKey:"api-version" configUsage:"Metadata API version"`
	LF          configmap.Value[bool]   `configKey:"lf" configUsage:"terminate CSV rows by LF instead of CRLF"`
	JSON        configmap.Value[bool]   `configKey:"json" configUsage:"print the result as JSON"`
	Artifact    s3mirror.Config         `configKey:"artifact"`
}

// quietScope replaces the logger in the JSON mode.
type quietScope struct {
	dependencies.ExportCommandScope
	logger log.Logger
}

// jsonResult is printed to stdout if the "--json" flag is set.
type jsonResult struct {
	Status int    `json:"status"`
	Result string `json:"result"`
}

func (s *quietScope) Logger() log.Logger {
	return s.logger
}

func DefaultFlags() Flags {
	return Flags{
		APIVersion: configmap.NewValue(salesforce.DefaultAPIVersion),
		Artifact:   s3mirror.DefaultConfig(),
	}
}

func (f *Flags) Normalize() {
	f.TargetOrg.Value = strings.TrimSpace(f.TargetOrg.Value)
	f.Dependent.Value = strings.TrimSpace(f.Dependent.Value)
	f.InstanceURL.Value = strings.TrimSpace(f.InstanceURL.Value)
	f.AccessToken.Value = strings.TrimSpace(f.AccessToken.Value)
}

func (f *Flags) Validate() error {
	errs := errors.NewMultiError()
	for _, v := range []struct {
		flag  string
		value string
	}{
		{flag: "target-org", value: f.TargetOrg.Value},
		{flag: "dependent", value: f.Dependent.Value},
		{flag: "output-dir", value: f.OutputDir.Value},
	} {
		if v.value == "" {
			envName := env.NewNamingConvention(cmdconfig.ENVPrefix).FlagToEnv(v.flag)
			errs.Append(errors.Errorf(`missing required flag "--%s" or ENV "%s"`, v.flag, envName))
		}
	}

	if f.Dependent.Value != "" {
		if err := picklist.CheckFieldName(f.Dependent.Value); err != nil {
			errs.Append(err)
		}
	}

	return errs.ErrorOrNil()
}

func Command(p dependencies.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		Short:   helpmsg.Read(`picklist/dependency/export/short`),
		Long:    helpmsg.Read(`picklist/dependency/export/long`),
		Example: helpmsg.Read(`picklist/dependency/export/example`),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := DefaultFlags()
			if err := p.BaseScope().ConfigBinder().Bind(cmd.Context(), cmd.Flags(), args, &f); err != nil {
				return err
			}

			// Get dependencies
			remoteCfg := dependencies.RemoteConfig{
				TargetOrg:   f.TargetOrg.Value,
				Credentials: salesforce.Credentials{InstanceURL: f.InstanceURL.Value, AccessToken: f.AccessToken.Value},
				APIVersion:  f.APIVersion.Value,
			}
			outputCfg := dependencies.OutputConfig{Dir: f.OutputDir.Value, Mirror: f.Artifact}
			d, err := p.ExportCommandScope(cmd.Context(), remoteCfg, outputCfg)
			if err != nil {
				return err
			}

			// Only the JSON document is printed to stdout in the JSON mode
			if f.JSON.Value {
				d = &quietScope{ExportCommandScope: d, logger: log.NewNopLogger()}
			}
			d.Logger().Infof(cmd.Context(), "Connecting to %s...", d.Org())

			// Export, the filesystem is rooted at the output directory
			options := exportOp.Options{
				DependentField: f.Dependent.Value,
				OutputDir:      ".",
				LF:             f.LF.Value,
			}
			csv, err := exportOp.Run(cmd.Context(), options, d)
			if err != nil {
				return err
			}

			// Print result
			if f.JSON.Value {
				out, err := json.EncodeString(jsonResult{Status: 0, Result: csv}, true)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(d.Stdout(), out)
				return err
			}

			return nil
		},
	}

	// Flags
	configmap.MustGenerateFlags(cmd.Flags(), DefaultFlags())

	return cmd
}
