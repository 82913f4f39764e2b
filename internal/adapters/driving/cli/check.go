package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the saved session",
	Long: `Connect with the USER_SESSION_STRING stored in the env file and show
which account it belongs to. Access to BACKUP_CHANNEL_ID is tested too.

Nothing is written to the env file.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if setupService == nil {
		return errors.New("setup service not configured")
	}
	ctx := cmd.Context()

	setup, err := setupService.LoadSetup(ctx)
	if err != nil {
		return reportConfigError(cmd, err)
	}

	report, err := setupService.Check(ctx, setup)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			printError(cmd, "No USER_SESSION_STRING in "+setup.EnvPath+". Run 'tgsetup' first.")
			return reported(err)
		}
		return reportRunError(ctx, cmd, "Session check failed", err)
	}

	printSuccess(cmd, "Session is valid")
	printAccount(cmd, report.Account)
	printChannelCheck(cmd, report.ChannelCheck)
	return nil
}
