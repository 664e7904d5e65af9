package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/roster/internal/config"
	"github.com/zjrosen/roster/internal/log"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the roles offered by the form",
	Long: `List, add or remove the roles offered by the registration form and the
role filter. Changes are written to the active config file; a running TUI
picks them up without a restart.

Examples:
  roster roles
  roster roles add Monitor
  roster roles rm Monitor`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, r := range cfg.Roles {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), r)
		}
		return nil
	},
}

var rolesAddCmd = &cobra.Command{
	Use:   "add <role>",
	Short: "Add a role to the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := strings.TrimSpace(args[0])
		if role == "" {
			return errors.New("role must not be empty")
		}
		if slices.Contains(cfg.Roles, role) {
			return fmt.Errorf("role %q already configured", role)
		}
		return saveRoles(cmd, append(slices.Clone(cfg.Roles), role))
	},
}

var rolesRmCmd = &cobra.Command{
	Use:     "rm <role>",
	Aliases: []string{"remove"},
	Short:   "Remove a role from the config file",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := strings.TrimSpace(args[0])
		i := slices.Index(cfg.Roles, role)
		if i < 0 {
			return fmt.Errorf("role %q is not configured", role)
		}
		if len(cfg.Roles) == 1 {
			return errors.New("at least one role must remain")
		}
		return saveRoles(cmd, slices.Delete(slices.Clone(cfg.Roles), i, i+1))
	},
}

func init() {
	rolesCmd.AddCommand(rolesAddCmd, rolesRmCmd)
	rootCmd.AddCommand(rolesCmd)
}

func saveRoles(cmd *cobra.Command, roles []string) error {
	path := configPath()
	if path == "" {
		path = filepath.Join(userConfigDir(), "config.yaml")
	}
	if err := config.SaveRoles(path, roles); err != nil {
		return fmt.Errorf("saving roles: %w", err)
	}
	cfg.Roles = roles
	log.Info(log.CatConfig, "Roles saved", "path", path, "count", len(roles))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d roles to %s\n", len(roles), path)
	return nil
}
