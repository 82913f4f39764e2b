package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
)

var errSessionNotSaved = errors.New("session not saved")

func runSetup(cmd *cobra.Command, _ []string) error {
	if setupService == nil {
		return errors.New("setup service not configured")
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	printTitle(cmd, "Telegram Session Setup")
	fmt.Fprintln(out, "This will authenticate your personal Telegram account")
	fmt.Fprintf(out, "Make sure you have Telegram Premium for %s file uploads\n", gigabytes(domain.UploadLimitPremium))
	fmt.Fprintln(out)

	setup, err := setupService.LoadSetup(ctx)
	if err != nil {
		return reportConfigError(cmd, err)
	}

	fmt.Fprintf(out, "Using API_ID: %d\n", setup.Credentials.AppID)
	fmt.Fprintf(out, "Using API_HASH: %s\n", setup.Credentials.MaskedHash())
	if setup.ExistingSession != "" {
		printWarning(cmd, fmt.Sprintf(
			"%s already contains %s, the new session will be appended and take precedence",
			setup.EnvPath, domain.KeySessionString))
	}

	fmt.Fprintln(out, "\nStarting authentication...")
	report, err := setupService.Run(ctx, setup, prompterFactory(cmd))
	if err != nil {
		return reportRunError(ctx, cmd, "Setup failed", err)
	}

	printSuccess(cmd, "Authentication successful!")
	printAccount(cmd, report.Account)

	if !report.Saved {
		fmt.Fprintln(out)
		printError(cmd, fmt.Sprintf("Session string was not saved to %s", report.EnvPath))
		return reported(errSessionNotSaved)
	}
	fmt.Fprintf(out, "\nSession string saved to %s\n", report.EnvPath)
	fmt.Fprintln(out, "Setup completed! You can now upload large files.")

	printChannelCheck(cmd, report.ChannelCheck)
	return nil
}

// reportConfigError explains env file problems.
func reportConfigError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, domain.ErrEnvNotFound):
		printError(cmd, fmt.Sprintf("%s file not found!", envFile))
	case errors.Is(err, domain.ErrMissingCredentials):
		printError(cmd, fmt.Sprintf("Missing TELEGRAM_API_ID or TELEGRAM_API_HASH in %s file", envFile))
	case errors.Is(err, domain.ErrInvalidCredentials):
		printError(cmd, fmt.Sprintf("Invalid API_ID or API_HASH in %s file", envFile))
	default:
		printError(cmd, fmt.Sprintf("Cannot read %s: %v", envFile, err))
	}
	return reported(err)
}

// reportRunError explains a failed login or session check.
func reportRunError(ctx context.Context, cmd *cobra.Command, what string, err error) error {
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		fmt.Fprintln(cmd.OutOrStdout())
		printWarning(cmd, "Setup cancelled by user")
	case errors.Is(err, domain.ErrNotAuthorized):
		printError(cmd, "Authentication failed")
	default:
		fmt.Fprintln(cmd.OutOrStdout())
		printError(cmd, fmt.Sprintf("%s: %v", what, err))
		printTroubleshooting(cmd)
	}
	return reported(err)
}
