package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/parishworks/vestry/internal/cli"
	"github.com/parishworks/vestry/internal/common"
	"github.com/parishworks/vestry/internal/config"
	"github.com/parishworks/vestry/internal/sheets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage credentials for external services",
		Long:  `Manage the ledger API key and Google Sheets authentication.`,
	}

	cmd.AddCommand(authKeyCmd())
	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the ledger API key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Store the ledger API key",
		Long: `Store the ledger API key in the local credential file.

The key is read from stdin so it never lands in shell history.`,
		RunE: runAuthKeySet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether an API key is stored",
		RunE:  runAuthKeyStatus,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		RunE:  runAuthKeyClear,
	})

	return cmd
}

func credentialStore() *config.FileCredentialStore {
	return config.NewFileCredentialStore(viper.GetString("ledger.credentials_path"))
}

func runAuthKeySet(_ *cobra.Command, _ []string) error {
	fmt.Fprint(os.Stderr, "Ledger API key: ")

	var key string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		key = string(raw)
	} else {
		if _, err := fmt.Fscanln(os.Stdin, &key); err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return common.NewUserError("API key is empty.", common.ErrNoCredentials)
	}

	if err := credentialStore().SetAPIKey(key); err != nil {
		return err
	}

	slog.Info(cli.FormatSuccess("API key stored"))
	return nil
}

func runAuthKeyStatus(_ *cobra.Command, _ []string) error {
	_, err := credentialStore().APIKey()
	if err != nil {
		slog.Info(cli.FormatWarning("No API key stored"))
		return nil
	}
	slog.Info(cli.FormatSuccess("API key is stored"))
	return nil
}

func runAuthKeyClear(_ *cobra.Command, _ []string) error {
	if err := credentialStore().Clear(); err != nil {
		return err
	}
	slog.Info(cli.FormatSuccess("API key removed"))
	return nil
}

func authSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This opens your browser to approve access and caches the refresh token
for future exports. Run it once before 'vestry export'.`,
		RunE: runAuthSheets,
	}
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if clientID == "" || clientSecret == "" {
		return common.NewUserError(
			"Google Sheets OAuth client not configured. Set sheets.client_id and sheets.client_secret.",
			common.ErrMissingConfig)
	}

	tokenFile := config.ExpandPath(viper.GetString("sheets.token_file"))
	if tokenFile == "" {
		tokenFile = config.ExpandPath("~/.config/vestry/sheets-token.json")
	}

	token, err := sheets.GetOrCreateToken(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
	})
	if err != nil {
		return fmt.Errorf("sheets authentication failed: %w", err)
	}

	if token.RefreshToken != "" {
		slog.Info("Add this refresh token to your config under sheets.refresh_token,")
		slog.Info("or leave it cached in the token file", "file", tokenFile)
	}

	slog.Info(cli.FormatSuccess("Google Sheets authentication complete"))
	return nil
}
