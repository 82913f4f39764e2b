package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
)

// Styles for command output. lipgloss drops colours when stdout is not a terminal.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

var troubleshooting = []string{
	"Make sure your phone number includes country code (+84987654321)",
	"Check Telegram app for verification code",
	"If you have 2FA, enter your password correctly",
	"Ensure you have internet connection",
}

// All command output, errors included, goes to stdout next to the prompts.

func printTitle(cmd *cobra.Command, title string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(title))
	fmt.Fprintln(out, strings.Repeat("=", len(title)))
}

func printSuccess(cmd *cobra.Command, msg string) {
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(msg))
}

func printWarning(cmd *cobra.Command, msg string) {
	fmt.Fprintln(cmd.OutOrStdout(), warningStyle.Render(msg))
}

func printError(cmd *cobra.Command, msg string) {
	fmt.Fprintln(cmd.OutOrStdout(), errorStyle.Render(msg))
}

func printAccount(cmd *cobra.Command, account domain.Account) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Authenticated as: %s\n", account.DisplayName())
	fmt.Fprintf(out, "Username: %s\n", account.Handle())
	fmt.Fprintf(out, "User ID: %d\n", account.ID)

	limit := gigabytes(account.UploadLimit())
	if account.Premium {
		printSuccess(cmd, "Telegram Premium: YES - can upload up to "+limit+" files")
	} else {
		printWarning(cmd, "Telegram Premium: NO - limited to "+limit+" files")
		fmt.Fprintln(out, mutedStyle.Render("Consider upgrading to Telegram Premium for larger file uploads"))
	}
}

// gigabytes renders a byte count in whole GB.
func gigabytes(n int64) string {
	return fmt.Sprintf("%dGB", n>>30)
}

func printChannelCheck(cmd *cobra.Command, check domain.ChannelCheck) {
	if check.Status == domain.ChannelCheckSkipped {
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nTesting access to backup channel: %s\n", check.Raw)
	switch check.Status {
	case domain.ChannelCheckConfirmed:
		if check.Channel != nil && check.Channel.Title != "" {
			printSuccess(cmd, "Backup channel access confirmed! ("+check.Channel.Title+")")
		} else {
			printSuccess(cmd, "Backup channel access confirmed!")
		}
	case domain.ChannelCheckFailed:
		printWarning(cmd, "Warning: Cannot access backup channel: "+errString(check.Err))
		fmt.Fprintln(out, "Make sure your account is added to the backup channel")
	}
}

func printTroubleshooting(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nTroubleshooting:")
	for i, tip := range troubleshooting {
		fmt.Fprintf(out, "%d. %s\n", i+1, tip)
	}
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
