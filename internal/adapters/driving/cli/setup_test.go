package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driven"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driving"
)

// mockSetupService implements driving.SetupService for testing.
type mockSetupService struct {
	setup    *domain.Setup
	loadErr  error
	report   *domain.Report
	runErr   error
	checkErr error

	envPath  string
	prompter driven.Prompter
	ran      bool
	checked  bool
}

func (m *mockSetupService) LoadSetup(_ context.Context) (*domain.Setup, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.setup, nil
}

func (m *mockSetupService) Run(_ context.Context, _ *domain.Setup, p driven.Prompter) (*domain.Report, error) {
	m.ran = true
	m.prompter = p
	return m.report, m.runErr
}

func (m *mockSetupService) Check(_ context.Context, _ *domain.Setup) (*domain.Report, error) {
	m.checked = true
	return m.report, m.checkErr
}

func defaultSetup() *domain.Setup {
	return &domain.Setup{
		Credentials: domain.Credentials{AppID: 12345, AppHash: "0123456789abcdef"},
		EnvPath:     ".env",
	}
}

func defaultReport() *domain.Report {
	return &domain.Report{
		Account: domain.Account{ID: 42, FirstName: "Ada", LastName: "Lovelace", Username: "ada"},
		Session: "1session",
		Saved:   true,
		EnvPath: ".env",
		ChannelCheck: domain.ChannelCheck{
			Status: domain.ChannelCheckSkipped,
		},
	}
}

func setupCLITest(t *testing.T, mock *mockSetupService) *bytes.Buffer {
	t.Helper()

	oldFactory := serviceFactory
	oldPrompter := prompterFactory
	serviceFactory = func(envPath string) driving.SetupService {
		mock.envPath = envPath
		return mock
	}
	prompterFactory = func(_ *cobra.Command) driven.Prompter { return nil }

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	t.Cleanup(func() {
		serviceFactory = oldFactory
		prompterFactory = oldPrompter
		setupService = nil
		envFile = ".env"
		rootCmd.SetArgs(nil)
		rootCmd.SetContext(context.Background())
	})
	return buf
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "tgsetup", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "USER_SESSION_STRING")
}

func TestRootCmd_Flags(t *testing.T) {
	envFlag := rootCmd.PersistentFlags().Lookup("env-file")
	require.NotNil(t, envFlag)
	assert.Equal(t, ".env", envFlag.DefValue)

	verboseFlag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
}

func TestSetup_Success(t *testing.T) {
	mock := &mockSetupService{setup: defaultSetup(), report: defaultReport()}
	buf := setupCLITest(t, mock)
	rootCmd.SetArgs([]string{"--env-file", "bot.env"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, mock.ran)
	assert.Equal(t, "bot.env", mock.envPath)

	out := buf.String()
	assert.Contains(t, out, "Telegram Session Setup")
	assert.Contains(t, out, "Using API_ID: 12345")
	assert.Contains(t, out, "Using API_HASH: 01234567...")
	assert.Contains(t, out, "Starting authentication...")
	assert.Contains(t, out, "Authentication successful!")
	assert.Contains(t, out, "Authenticated as: Ada Lovelace")
	assert.Contains(t, out, "Username: @ada")
	assert.Contains(t, out, "User ID: 42")
	assert.Contains(t, out, "Telegram Premium: NO - limited to 2GB files")
	assert.Contains(t, out, "Session string saved to .env")
	assert.NotContains(t, out, "Testing access to backup channel")
}

func TestSetup_PremiumAndChannel(t *testing.T) {
	report := defaultReport()
	report.Account.Premium = true
	report.ChannelCheck = domain.ChannelCheck{
		Status:  domain.ChannelCheckConfirmed,
		Raw:     "-1001234",
		Channel: &domain.Channel{ID: 1234, Title: "Backups"},
	}
	mock := &mockSetupService{setup: defaultSetup(), report: report}
	buf := setupCLITest(t, mock)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Telegram Premium: YES - can upload up to 4GB files")
	assert.Contains(t, out, "Testing access to backup channel: -1001234")
	assert.Contains(t, out, "Backup channel access confirmed! (Backups)")
}

func TestSetup_ChannelWarning(t *testing.T) {
	report := defaultReport()
	report.ChannelCheck = domain.ChannelCheck{
		Status: domain.ChannelCheckFailed,
		Raw:    "-1001234",
		Err:    domain.ErrChannelNotFound,
	}
	mock := &mockSetupService{setup: defaultSetup(), report: report}
	buf := setupCLITest(t, mock)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Warning: Cannot access backup channel: channel not found")
	assert.Contains(t, out, "Make sure your account is added to the backup channel")
}

func TestSetup_ExistingSessionWarning(t *testing.T) {
	setup := defaultSetup()
	setup.ExistingSession = "1old"
	mock := &mockSetupService{setup: setup, report: defaultReport()}
	buf := setupCLITest(t, mock)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "already contains USER_SESSION_STRING")
}

func TestSetup_ConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Missing file", domain.ErrEnvNotFound, ".env file not found!"},
		{"Missing credentials", domain.ErrMissingCredentials, "Missing TELEGRAM_API_ID or TELEGRAM_API_HASH"},
		{"Invalid credentials", domain.ErrInvalidCredentials, "Invalid API_ID or API_HASH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockSetupService{loadErr: tt.err}
			buf := setupCLITest(t, mock)
			rootCmd.SetArgs([]string{})

			err := rootCmd.Execute()

			assert.ErrorIs(t, err, tt.err)
			assert.True(t, errors.As(err, new(*reportedError)))
			assert.Contains(t, buf.String(), tt.expected)
			assert.False(t, mock.ran)
		})
	}
}

func TestSetup_FailurePrintsTroubleshooting(t *testing.T) {
	mock := &mockSetupService{setup: defaultSetup(), runErr: errors.New("PHONE_CODE_INVALID")}
	buf := setupCLITest(t, mock)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	require.Error(t, err)
	out := buf.String()
	assert.Contains(t, out, "Setup failed: PHONE_CODE_INVALID")
	assert.Contains(t, out, "Troubleshooting:")
	assert.Contains(t, out, "1. Make sure your phone number includes country code")
	assert.Contains(t, out, "4. Ensure you have internet connection")
}

func TestSetup_NotAuthorized(t *testing.T) {
	mock := &mockSetupService{setup: defaultSetup(), runErr: domain.ErrNotAuthorized}
	buf := setupCLITest(t, mock)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	assert.Contains(t, buf.String(), "Authentication failed")
	assert.NotContains(t, buf.String(), "Troubleshooting:")
}

func TestSetup_Cancelled(t *testing.T) {
	mock := &mockSetupService{setup: defaultSetup(), runErr: context.Canceled}
	buf := setupCLITest(t, mock)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, buf.String(), "Setup cancelled by user")
	assert.NotContains(t, buf.String(), "Troubleshooting:")
}

func TestSetup_NoServiceConfigured(t *testing.T) {
	buf := setupCLITest(t, &mockSetupService{})
	serviceFactory = nil
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup service not configured")
	assert.Empty(t, buf.String())
}

func TestCheckCmd_Use(t *testing.T) {
	assert.Equal(t, "check", checkCmd.Use)
	assert.Equal(t, "Verify the saved session", checkCmd.Short)
}

func TestCheckCmd_Success(t *testing.T) {
	report := defaultReport()
	report.Saved = false
	mock := &mockSetupService{setup: defaultSetup(), report: report}
	buf := setupCLITest(t, mock)
	rootCmd.SetArgs([]string{"check"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, mock.checked)
	assert.False(t, mock.ran)
	assert.Contains(t, buf.String(), "Session is valid")
	assert.Contains(t, buf.String(), "User ID: 42")
}

func TestCheckCmd_NoSession(t *testing.T) {
	mock := &mockSetupService{setup: defaultSetup(), checkErr: domain.ErrNoSession}
	buf := setupCLITest(t, mock)
	rootCmd.SetArgs([]string{"check"})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Contains(t, buf.String(), "No USER_SESSION_STRING in .env")
}

func TestCheckCmd_Failure(t *testing.T) {
	mock := &mockSetupService{setup: defaultSetup(), checkErr: errors.New("AUTH_KEY_UNREGISTERED")}
	buf := setupCLITest(t, mock)
	rootCmd.SetArgs([]string{"check"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, buf.String(), "Session check failed: AUTH_KEY_UNREGISTERED")
}

func TestSetup_OutputGoesToStdout(t *testing.T) {
	mock := &mockSetupService{setup: defaultSetup(), runErr: errors.New("PHONE_NUMBER_INVALID")}
	out := setupCLITest(t, mock)
	errOut := new(bytes.Buffer)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, out.String(), "Telegram Session Setup")
	assert.Contains(t, out.String(), "Setup failed: PHONE_NUMBER_INVALID")
	assert.Contains(t, out.String(), "Troubleshooting:")
	assert.Empty(t, errOut.String())
}

func TestSetup_SuccessOutputGoesToStdout(t *testing.T) {
	mock := &mockSetupService{setup: defaultSetup(), report: defaultReport()}
	out := setupCLITest(t, mock)
	errOut := new(bytes.Buffer)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Session string saved to .env")
	assert.Empty(t, errOut.String())
}

func TestSetup_NotSaved(t *testing.T) {
	report := defaultReport()
	report.Saved = false
	mock := &mockSetupService{setup: defaultSetup(), report: report}
	buf := setupCLITest(t, mock)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, errSessionNotSaved)
	assert.Contains(t, buf.String(), "Session string was not saved to .env")
	assert.NotContains(t, buf.String(), "Session string saved to")
	assert.NotContains(t, buf.String(), "Setup completed!")
}

func TestGigabytes(t *testing.T) {
	assert.Equal(t, "4GB", gigabytes(domain.UploadLimitPremium))
	assert.Equal(t, "2GB", gigabytes(domain.UploadLimitRegular))
	assert.Equal(t, "0GB", gigabytes(512))
}
