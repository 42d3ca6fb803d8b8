package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/gateway/nosh"
	"github.com/noshnavigator/nosh-cli/internal/service/output"
)

func newAuthCommand(deps Dependencies) *cobra.Command {
	auth := &cobra.Command{
		Use:   "auth",
		Short: "Create an account, log in, or inspect the signed-in user.",
	}
	auth.AddCommand(newAuthRegisterCommand(deps))
	auth.AddCommand(newAuthLoginCommand(deps))
	auth.AddCommand(newAuthMeCommand(deps))
	return auth
}

func newAuthRegisterCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var name, username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the server and save the session token.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if deps.Server == nil {
				return errors.New("no server configured; run 'nosh configure --server-url ...' first")
			}

			result, err := deps.Server.Register(cmd.Context(), nosh.Credentials{
				Name:     name,
				Username: username,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return emitServerError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output, err)
			}
			if err := saveProfileToken(cmd.Context(), deps, flags.Profile, result.Token); err != nil {
				return err
			}
			return emitAuthResult(cmd, flags, format, "Welcome, "+result.User.Name+"! You're signed in.", result)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&name, "name", "", "Display name.")
	cmd.Flags().StringVar(&username, "username", "", "Unique username.")
	cmd.Flags().StringVar(&email, "email", "", "Email address.")
	cmd.Flags().StringVar(&password, "password", "", "Password, 6 characters or more.")
	return cmd
}

func newAuthLoginCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var login, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a username or email and save the session token.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if deps.Server == nil {
				return errors.New("no server configured; run 'nosh configure --server-url ...' first")
			}

			result, err := deps.Server.Login(cmd.Context(), login, password)
			if err != nil {
				return emitServerError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output, err)
			}
			if err := saveProfileToken(cmd.Context(), deps, flags.Profile, result.Token); err != nil {
				return err
			}
			return emitAuthResult(cmd, flags, format, "Welcome back, "+result.User.Name+"!", result)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&login, "login", "", "Username or email.")
	cmd.Flags().StringVar(&password, "password", "", "Password.")
	return cmd
}

func newAuthMeCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var token string

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the account behind the saved or given session token.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if deps.Server == nil {
				return errors.New("no server configured; run 'nosh configure --server-url ...' first")
			}

			resolved := resolveToken(cmd.Context(), deps, flags, token)
			if resolved == "" {
				return emitError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output,
					"NOSH_NO_TOKEN", "Not signed in. Run 'nosh auth login' first.")
			}

			account, err := deps.Server.Me(cmd.Context(), resolved)
			if err != nil {
				return emitServerError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output, err)
			}

			if format != output.FormatTable {
				env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), map[string]any{
					"user": machineAccount(account),
				}, nil, nil)
				return writeMachinePayload(cmd, env, format, flags.Output)
			}
			return writeTable(cmd, renderAccountTable(account), flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&token, "token", "", "Session token; defaults to the one saved with the profile.")
	return cmd
}

func emitAuthResult(cmd *cobra.Command, flags globalFlags, format output.Format, message string, result nosh.AuthResult) error {
	if format != output.FormatTable {
		env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), map[string]any{
			"token": result.Token,
			"user":  machineAccount(result.User),
		}, nil, nil)
		return writeMachinePayload(cmd, env, format, flags.Output)
	}
	return writeTable(cmd, message, flags.Output)
}

func renderAccountTable(account nosh.Account) string {
	rows := [][]string{
		{"Name", account.Name},
		{"Username", account.Username},
		{"Email", account.Email},
	}
	if account.CreatedAt != "" {
		rows = append(rows, []string{"Joined", account.CreatedAt})
	}
	return output.RenderTable("Account", []string{"Field", "Value"}, rows)
}

func machineAccount(account nosh.Account) map[string]any {
	entry := map[string]any{
		"id":       account.ID,
		"name":     account.Name,
		"username": account.Username,
		"email":    account.Email,
	}
	if account.CreatedAt != "" {
		entry["created_at"] = account.CreatedAt
	}
	return entry
}

// saveProfileToken stores the session token on the selected profile,
// creating a default profile when no config exists yet.
func saveProfileToken(ctx context.Context, deps Dependencies, profileName, token string) error {
	if deps.Config == nil || strings.TrimSpace(token) == "" {
		return nil
	}
	cfg, err := deps.Config.Load(ctx)
	if err != nil || len(cfg.Profiles) == 0 {
		cfg = domain.Config{Profiles: []domain.Profile{{Name: "Default", IsDefault: true}}}
	}
	index := findProfileIndex(cfg, profileName)
	if index < 0 {
		cfg.Profiles = append(cfg.Profiles, domain.Profile{Name: strings.TrimSpace(profileName)})
		index = len(cfg.Profiles) - 1
	}
	cfg.Profiles[index].Token = token
	return deps.Config.Save(ctx, cfg)
}
