// Package cli implements the resgen command line.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syssam/resgen/internal/logging"
)

// Version is set at build time.
var Version = "dev"

// NewRootCmd returns the resgen command tree. Every call binds a fresh
// configuration, so commands can be run more than once in a process.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:   "resgen",
		Short: "Generate resource group aliases, records and extractors",
		Long: "resgen reads //resgen:group definitions and *.resgen.yaml schemas and writes,\n" +
			"for every group, type aliases, an ownership-wrapped record and an extractor\n" +
			"moving the group's peripherals out of the container.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			if noColor {
				color.NoColor = true
			}
			name, _ := cmd.Flags().GetString("log-level")
			level, err := logging.ParseLevel(name)
			if err != nil {
				return err
			}
			logging.Setup(logging.Options{Level: level, NoColor: noColor, Output: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().String("config", "", "configuration file (default: "+ConfigFile+" in --dir)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().Bool("no-color", false, "disable colored output")

	root.AddCommand(generateCmd(v))
	root.AddCommand(watchCmd(v))
	root.AddCommand(ecosystemCmd())
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}
