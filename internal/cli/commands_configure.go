package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noshnavigator/nosh-cli/internal/domain"
)

func newConfigureCommand(deps Dependencies) *cobra.Command {
	var profileName string
	var serverURL string
	var token string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Create and manage local profile configuration.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			existingCfg, loadErr := deps.Config.Load(cmd.Context())
			hasExisting := loadErr == nil && len(existingCfg.Profiles) > 0
			if hasExisting && !overwrite {
				if strings.TrimSpace(serverURL) == "" && strings.TrimSpace(token) == "" {
					return fmt.Errorf("provide --server-url or --token to update profile fields")
				}
				index := findProfileIndex(existingCfg, profileName)
				if index < 0 {
					return fmt.Errorf("profile %q not found in existing config", profileName)
				}
				if strings.TrimSpace(serverURL) != "" {
					existingCfg.Profiles[index].ServerURL = strings.TrimSpace(serverURL)
				}
				if strings.TrimSpace(token) != "" {
					existingCfg.Profiles[index].Token = strings.TrimSpace(token)
				}
				if err := deps.Config.Save(cmd.Context(), existingCfg); err != nil {
					return err
				}
				return writeTable(cmd, "🏁 Config updated successfully!", "")
			}

			cfg := domain.Config{
				Profiles: []domain.Profile{
					{
						Name:      profileName,
						IsDefault: true,
						ServerURL: strings.TrimSpace(serverURL),
						Token:     strings.TrimSpace(token),
					},
				},
			}
			if err := deps.Config.Save(cmd.Context(), cfg); err != nil {
				return err
			}
			return writeTable(cmd, "🏁 Config was created successfully!", "")
		},
	}

	cmd.Flags().StringVar(&profileName, "profile-name", "Default", "Profile name")
	cmd.Flags().StringVar(&serverURL, "server-url", "", "Base URL of the noshd server used for auth and remote chat.")
	cmd.Flags().StringVar(&token, "token", "", "Optional session token saved with the profile.")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing config")
	return cmd
}

func findProfileIndex(cfg domain.Config, profileName string) int {
	trimmed := strings.TrimSpace(profileName)
	if trimmed != "" {
		for i, profile := range cfg.Profiles {
			if strings.EqualFold(strings.TrimSpace(profile.Name), trimmed) {
				return i
			}
		}
	}
	for i, profile := range cfg.Profiles {
		if profile.IsDefault {
			return i
		}
	}
	if len(cfg.Profiles) == 1 {
		return 0
	}
	return -1
}
