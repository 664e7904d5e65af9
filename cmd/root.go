package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/roster/internal/app"
	"github.com/zjrosen/roster/internal/config"
	"github.com/zjrosen/roster/internal/log"
	"github.com/zjrosen/roster/internal/ui/styles"
	"github.com/zjrosen/roster/internal/watcher"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 reply can leak into the first text input.
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".roster/config.yaml"
	debugLogPath    = "debug.log"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "A terminal registration manager",
	Long: `roster collects person registrations through a form, lists them with a
delete control per item and filters the list by role. Records live in memory
for the duration of the session.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .roster/config.yaml or ~/.config/roster/config.yaml)")
	rootCmd.PersistentFlags().StringP("seed", "s", "",
		"YAML file of registrations to load at startup (a list, or a records: mapping)")
	rootCmd.PersistentFlags().StringP("filter", "f", "",
		"role to show initially (default: all roles)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false,
		"write a debug log to "+debugLogPath+" (also ROSTER_DEBUG=1)")

	_ = viper.BindPFlag("seed_file", rootCmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix("ROSTER")
	_ = viper.BindEnv("debug")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Lookup order: ./.roster/config.yaml, then ~/.config/roster/config.yaml
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(userConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			defaultPath := filepath.Join(userConfigDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func userConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "roster")
}

// configPath is the file the running config came from, or "" when only
// defaults are in effect.
func configPath() string {
	return viper.ConfigFileUsed()
}

func runApp(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd.Context(), cfg, viper.GetBool("debug"))
	if err != nil {
		return err
	}
	defer rt.Close()

	styles.ApplyTheme(cfg.Theme.Muted, cfg.Theme.Error, cfg.Theme.Success)
	zone.NewGlobal()

	filter, _ := cmd.Flags().GetString("filter")
	params := app.Params{
		Manager:  rt.manager,
		Config:   cfg,
		Tracer:   rt.tracer.Tracer(),
		Recorder: rt.recorder,
		Filter:   filter,
		Debug:    rt.debug,
	}

	if path := configPath(); path != "" {
		if w, err := watcher.New(watcher.DefaultConfig(path)); err == nil {
			if err := w.Start(); err == nil {
				defer func() { _ = w.Stop() }()
				params.ConfigEvents = w.Broker()
				params.Reload = func() (config.Config, error) { return config.Load(path) }
			} else {
				log.Warn(log.CatConfig, "Config watcher not started", "error", err)
				_ = w.Stop()
			}
		}
	}

	model := app.New(params)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
