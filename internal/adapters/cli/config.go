package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage lthgame configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (LTH_* prefix, plus DATABASE_URL)
2. Config file (config.yaml)
3. Default values

User preferences (default user and level) are stored in ~/.lthgame/profile.yaml

Examples:
  lthgame config show
  lthgame config set-user team-7
  lthgame config set-level 2
  lthgame config clear`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetUserCommand())
	cmd.AddCommand(newConfigSetLevelCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			store, err := config.OpenProfileStore()
			if err != nil {
				return err
			}
			profile, err := store.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: %v\n\n", err)
				profile = &config.Profile{}
			}

			if jsonOutput {
				return printJSON(out, map[string]interface{}{"config": cfg, "profile": profile})
			}

			fmt.Fprintln(out, "lthgame Configuration")
			fmt.Fprintln(out, "=====================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Profile:          %s\n", store.Path())
			if profile.UserID != "" {
				fmt.Fprintf(out, "  Default User:     %s\n", profile.UserID)
			} else {
				fmt.Fprintf(out, "  Default User:     (not set)\n")
			}
			if profile.LevelID != nil {
				fmt.Fprintf(out, "  Default Level:    %d\n", *profile.LevelID)
			} else {
				fmt.Fprintf(out, "  Default Level:    (not set)\n")
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}

			fmt.Fprintln(out, "\nAPI Server:")
			fmt.Fprintf(out, "  Address:          %s\n", cfg.Server.Address)
			fmt.Fprintf(out, "  Rate Limit:       %d req/s (burst: %d)\n",
				cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst)
			fmt.Fprintf(out, "  Metrics:          %v (%s)\n", cfg.Metrics.Enabled, cfg.Metrics.Path)

			fmt.Fprintln(out, "\nGame:")
			if cfg.Game.LevelsDir != "" {
				fmt.Fprintf(out, "  Levels Dir:       %s\n", cfg.Game.LevelsDir)
			} else {
				fmt.Fprintf(out, "  Levels Dir:       (built-in levels)\n")
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

// newConfigSetUserCommand creates the config set-user subcommand
func newConfigSetUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-user <user-id>",
		Short: "Set default user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := shared.NewUserID(args[0]); err != nil {
				return err
			}

			if err := updateProfile(func(p *config.Profile) { p.UserID = args[0] }); err != nil {
				return fmt.Errorf("failed to set default user: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default user set to %s\n", args[0])
			return nil
		},
	}
}

// newConfigSetLevelCommand creates the config set-level subcommand
func newConfigSetLevelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-level <level-id>",
		Short: "Set default level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			levelID, err := parseLevelArg(args[0])
			if err != nil {
				return err
			}

			if err := updateProfile(func(p *config.Profile) { p.LevelID = &levelID }); err != nil {
				return fmt.Errorf("failed to set default level: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default level set to %d\n", levelID)
			return nil
		},
	}
}

// newConfigClearCommand creates the config clear subcommand
func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear default user and level",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := updateProfile(func(p *config.Profile) { *p = config.Profile{} }); err != nil {
				return fmt.Errorf("failed to clear defaults: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Defaults cleared")
			return nil
		},
	}
}

func updateProfile(fn func(p *config.Profile)) error {
	store, err := config.OpenProfileStore()
	if err != nil {
		return err
	}
	return store.Update(fn)
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
