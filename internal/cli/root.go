package cli

import (
	"fmt"
	"log/slog"

	"github.com/octet-labs/mkexample/internal/branding"
	"github.com/octet-labs/mkexample/internal/config"
	"github.com/octet-labs/mkexample/internal/logging"
	"github.com/octet-labs/mkexample/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global flags.
var (
	cfgFile   string
	rootDir   string
	verbose   bool
	logFormat string
)

// Root-only flags.
var (
	updateFlag bool
	cleanFlag  bool
)

// Populated by PersistentPreRunE for commands that touch the examples tree.
var (
	cfg    *config.Config
	logger *slog.Logger
)

// skipSetup marks commands that must run without a loadable config.
const skipSetup = "skip-setup"

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [name...]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates example projects from the prototype project.

Every file of the prototype is copied into example_<name>, with the word
"prototype" replaced by <name> in file names and file contents. Files that
already exist in the project are never overwritten, so running it again only
fills in what is missing.

Examples:
  ` + branding.CLIName() + ` invaders              create example_invaders
  ` + branding.CLIName() + ` --update              add new prototype files to every example
  ` + branding.CLIName() + ` --clean               delete generated IDE project files`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		for c := cmd; c != nil; c = c.Parent() {
			if c.Annotations[skipSetup] == "true" {
				return nil
			}
		}
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case updateFlag:
			return runUpdate(cmd)
		case cleanFlag:
			return runClean(cmd)
		case len(args) == 0:
			return cmd.Help()
		default:
			return runCreate(cmd, args)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./"+config.FilePath()+")")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Examples root directory (overrides "+config.KeyExamplesRoot+" and "+branding.EnvVar(config.KeyExamplesRoot)+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every file decision")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")

	rootCmd.Flags().BoolVar(&updateFlag, "update", false, "Add new prototype files to every existing example")
	rootCmd.Flags().BoolVar(&cleanFlag, "clean", false, "Remove generated IDE project files from every example")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("unrecognised option: %w", err)
	})
}

// setup loads the config, applies flag overrides, enforces required_version
// and builds the logger.
func setup(cmd *cobra.Command) error {
	config.SetFile(cfgFile)
	c, err := config.Load()
	if err != nil {
		return err
	}

	if rootDir != "" {
		c.ExamplesRoot = rootDir
	}
	if logFormat != "" {
		c.LogFormat = logFormat
	}
	if verbose {
		c.LogLevel = "debug"
	}

	if err := config.CheckVersion(c.RequiredVersion, buildVersion); err != nil {
		return err
	}

	l, err := logging.New(cmd.ErrOrStderr(), c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}

	cfg, logger = c, l
	return nil
}

func openEngine() (*scaffold.Engine, error) {
	return scaffold.Open(cfg, logger)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
