// Package cli implements the tgsetup command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgsetup/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driven"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driving"
	"github.com/custodia-labs/tgsetup/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// ServiceFactory builds the setup service once flags are parsed.
type ServiceFactory func(envPath string) driving.SetupService

// PrompterFactory builds the prompter used for login secrets.
type PrompterFactory func(cmd *cobra.Command) driven.Prompter

var (
	serviceFactory  ServiceFactory
	prompterFactory PrompterFactory = newTerminalPrompter

	setupService driving.SetupService
)

// Flags shared by all commands.
var (
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tgsetup",
	Short: "Create a Telegram user session for the upload bot",
	Long: `Log in to your personal Telegram account and save the session.

tgsetup reads TELEGRAM_API_ID and TELEGRAM_API_HASH from the env file,
asks for your phone number, the login code and (if enabled) your two-step
verification password, then appends USER_SESSION_STRING to the same file.

If BACKUP_CHANNEL_ID is set, access to that channel is checked as well.

Examples:
  tgsetup                        # Interactive login using ./.env
  tgsetup --env-file bot/.env    # Use another env file
  tgsetup check                  # Verify the saved session`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
	RunE:              runSetup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&envFile, "env-file", file.DefaultEnvFile, "Path to the env file")
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "Print debug output to stderr")
}

// SetServiceFactory sets how the setup service is built.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// Version returns the build version.
func Version() string {
	return version
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if serviceFactory != nil {
		setupService = serviceFactory(envFile)
	}
	return nil
}

// Execute runs the root command.
// Errors already explained to the user are not printed again.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.As(err, new(*reportedError)) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// reportedError marks an error whose explanation has been printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}
