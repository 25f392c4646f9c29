package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sfpd/picklist-dependency/internal/pkg/env"
	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem"
	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem/aferofs"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/salesforce"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/cmd/picklist"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/cmdconfig"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/dependencies"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/flag"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/helpmsg"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/common/configmap"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
	"github.com/sfpd/picklist-dependency/internal/pkg/version"
)

type RootFlags struct {
	Version bool `configKey:"version" configShorthand:"V" configUsage:"print version"`
}

func DefaultRootFlags() RootFlags {
	return RootFlags{}
}

//nolint:gochecknoinits
func init() {
	// Disable commands auto-sorting
	cobra.EnableCommandSorting = false

	// Add custom template functions
	cobra.AddTemplateFunc(`cmds`, func(root *cobra.Command) string {
		var out strings.Builder

		var maxCmdPathLength int
		visitSubCommands(root, func(cmd *cobra.Command) bool {
			cmdPath := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Use+` `)
			if len(cmdPath) > maxCmdPathLength {
				maxCmdPathLength = len(cmdPath)
			}
			return true
		})

		tmpl := fmt.Sprintf("  %%-%ds  %%s", maxCmdPathLength)

		visitSubCommands(root, func(cmd *cobra.Command) bool {
			if !cmd.IsAvailableCommand() && cmd.Name() != `help` {
				return false
			}

			// Separate context by new line
			level := cmdLevel(cmd) - cmdLevel(root)
			if level == 1 && !root.HasParent() {
				out.WriteString("\n")
			}

			// Indent and pad right
			cmdPath := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Use+` `)
			out.WriteString(strings.TrimRight(fmt.Sprintf(tmpl, cmdPath, cmd.Short), " "))
			out.WriteString("\n")
			return true
		})
		return strings.Trim(out.String(), "\n")
	})
}

type Cmd = cobra.Command

type RootCommand struct {
	*Cmd
	logger      log.Logger
	globalFlags flag.GlobalFlags
	logFile     *log.File
	logFormat   log.LogFormat
	loggerReady bool
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdin io.Reader, stdout io.Writer, stderr io.Writer, osEnvs *env.Map, opts ...dependencies.Option) *RootCommand {
	// Command definition
	root := &RootCommand{
		logger:      log.NewNopLogger(), // temporary logger, we don't have a path to the log file yet
		globalFlags: flag.DefaultGlobalFlags(),
	}
	root.Cmd = &Cmd{
		Use:               "sfpd", // name of the binary
		Version:           version.Version(),
		Short:             helpmsg.Read(`app`),
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		SilenceErrors:     true, // custom error handling, see printError
		RunE: func(cmd *cobra.Command, args []string) (cmdErr error) {
			// Print help if no command specified
			return root.Help()
		},
	}

	// Setup in/out
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	// Setup templates
	root.SetVersionTemplate("{{.Version}}")
	root.SetUsageTemplate(helpmsg.Read(`usage`) + "\n")

	// Persistent flags for all sub-commands
	configmap.MustGenerateFlags(root.PersistentFlags(), flag.DefaultGlobalFlags())

	// Root command flags
	configmap.MustGenerateFlags(root.Flags(), DefaultRootFlags())

	// Init when flags are parsed
	p := &dependencies.ProviderRef{}
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Bind flags - without ENVs from files
		root.globalFlags = flag.DefaultGlobalFlags()
		err := cmdconfig.NewBinder(osEnvs, log.NewNopLogger()).Bind(cmd.Context(), cmd.Flags(), args, &root.globalFlags)
		if err != nil {
			return err
		}

		// Get working directory
		workingDir := root.globalFlags.WorkingDir.Value
		if workingDir == "" {
			workingDir, err = os.Getwd() // nolint: forbidigo
			if err != nil {
				return errors.PrefixError(err, "cannot get working directory")
			}
		}
		workingDirFs, err := aferofs.NewLocalFs(workingDir, filesystem.WithLogger(root.logger))
		if err != nil {
			return err
		}
		if !workingDirFs.IsDir(cmd.Context(), ".") {
			return errors.Errorf(`working directory "%s" not found`, workingDir)
		}

		// Setup logger
		root.setupLogger()

		// Load ENVs
		envs := env.LoadDotEnv(cmd.Context(), root.logger, osEnvs, workingDirFs, []string{"."})

		// Bind flags - with ENVs from files
		root.globalFlags = flag.DefaultGlobalFlags()
		err = cmdconfig.NewBinder(envs, root.logger).Bind(cmd.Context(), cmd.Flags(), args, &root.globalFlags)
		if err != nil {
			return err
		}
		root.logger.Debugf(cmd.Context(), `Working dir: %s`, workingDirFs.BasePath())

		// Create dependencies provider
		p.Set(dependencies.NewProvider(
			root.logger,
			envs,
			root.globalFlags,
			workingDirFs.BasePath(),
			root.OutOrStdout(),
			root.ErrOrStderr(),
			opts...,
		))

		return nil
	}

	// Sub-commands
	root.AddCommand(
		picklist.Commands(p),
	)

	return root
}

// Execute command or sub-command.
func (root *RootCommand) Execute() (exitCode int) {
	defer func() {
		exitCode = root.tearDown(exitCode, recover())
	}()

	if err := root.Cmd.Execute(); err != nil {
		root.printError(err)
		return 1
	}
	return 0
}

func (root *RootCommand) printError(errRaw error) {
	// Logger may be uninitialized, if error occurred before initialization
	if !root.loggerReady {
		root.setupLogger()
	}

	// Convert to MultiError
	var originalErrs errors.MultiError
	if v, ok := errRaw.(errors.MultiError); ok { // nolint: errorlint
		originalErrs = v
	} else {
		originalErrs = errors.NewMultiError()
		originalErrs.Append(errRaw)
	}

	// Add hints
	for _, err := range originalErrs.WrappedErrors() {
		if errors.Is(err, salesforce.ErrMissingAccessToken) || errors.Is(err, salesforce.ErrMissingInstanceURL) {
			root.logger.Infof(root.context(), `Please log in to the org or check the state directory "%s".`, root.globalFlags.StateDir.Value)
		}
	}

	fullErr := errors.PrefixError(originalErrs, "Error")
	root.logger.Debugf(root.context(), "Error debug log:\n%s", errors.Format(fullErr, errors.FormatWithUnwrap()))
	root.PrintErrln(color.RedString(errors.Format(fullErr, errors.FormatAsSentences())))
}

func (root *RootCommand) setupLogger() {
	// Get log file
	var logFileErr error
	root.logFile, logFileErr = log.NewLogFile(root.globalFlags.LogFile.Value)

	var logFormatErr error
	root.logFormat, logFormatErr = log.NewLogFormat(root.globalFlags.LogFormat.Value)

	// Create logger
	root.logger = log.NewCliLogger(root.OutOrStdout(), root.ErrOrStderr(), root.logFile, root.logFormat, root.globalFlags.Verbose.Value)
	root.loggerReady = true

	// Warn if user specified log file + it cannot be opened
	if logFileErr != nil && root.globalFlags.LogFile.Value != "" {
		root.logger.Warnf(root.context(), "Cannot open log file: %s", logFileErr)
	}

	// Warn if user specified invalid log format
	if logFormatErr != nil {
		root.logger.Warnf(root.context(), "Invalid log format: %s", logFormatErr)
	}

	// Log info
	root.logger.Debug(root.context(), root.Version)
	root.logger.Debugf(root.context(), "Running command %v", os.Args)

	if root.logFile == nil {
		root.logger.Debug(root.context(), `Log file: -`)
	} else {
		root.logger.Debug(root.context(), `Log file: `+root.logFile.Path())
	}
}

// tearDown does clean-up after command execution.
func (root *RootCommand) tearDown(exitCode int, panicErr any) int {
	// Logger may be uninitialized, if error occurred before initialization
	if !root.loggerReady {
		root.setupLogger()
	}

	if panicErr != nil {
		logFilePath := ""
		if root.logFile != nil {
			logFilePath = root.logFile.Path()
		}

		// Process panic
		exitCode = cli.ProcessPanic(root.context(), panicErr, root.logger, logFilePath)
	}

	// Close log file
	root.logFile.TearDown(exitCode != 0)
	return exitCode
}

func (root *RootCommand) context() context.Context {
	if ctx := root.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// cmdLevel gets number of command parents.
func cmdLevel(cmd *cobra.Command) int {
	// Get number of parents
	level := 0
	cmd.VisitParents(func(_ *cobra.Command) {
		level++
	})
	return level
}

func visitSubCommands(root *cobra.Command, callback func(cmd *cobra.Command) (goDeep bool)) {
	for _, cmd := range root.Commands() {
		goDeep := callback(cmd)
		if goDeep {
			visitSubCommands(cmd, callback)
		}
	}
}
