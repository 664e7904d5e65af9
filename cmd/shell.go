package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/roster/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Line-oriented session on stdin/stdout",
	Long: `Run roster without the full-screen interface. Commands are read one per
line, which makes the session scriptable:

  printf 'add name=Ana email=ana@x.com role=Aluno\nlist\n' | roster shell

Type help inside the session for the command list.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx, cfg, viper.GetBool("debug"))
	if err != nil {
		return err
	}
	defer rt.Close()

	filter, _ := cmd.Flags().GetString("filter")
	s, err := shell.New(rt.manager, cmd.InOrStdin(), cmd.OutOrStdout(), shell.Options{
		Roles:     cfg.Roles,
		Filter:    filter,
		Tracer:    rt.tracer.Tracer(),
		Recorder:  rt.recorder,
		HelpStyle: helpStyle(cmd),
	})
	if err != nil {
		return err
	}
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// helpStyle picks a colored glamour style only when writing to a terminal.
func helpStyle(cmd *cobra.Command) string {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || termenv.NewOutput(f).Profile == termenv.Ascii {
		return "notty"
	}
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
