package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syssam/resgen/compiler"
)

func watchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [patterns]",
		Short: "Regenerate whenever a definition changes",
		Long: "watch generates like generate, then keeps regenerating as definition files\n" +
			"change until interrupted. Failed passes are reported and watching continues.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, v)
			if err != nil {
				return err
			}
			cfg, err := s.genConfig()
			if err != nil {
				return err
			}
			c := compiler.New(cfg,
				compiler.WithDir(s.Dir),
				compiler.WithLogger(slog.Default()),
				compiler.WithDebounce(v.GetDuration("debounce")),
			)
			return c.Watch(cmd.Context(), s.patterns(args)...)
		},
	}
	addGeneratorFlags(cmd.Flags())
	cmd.Flags().Duration("debounce", 0, "quiet period before regenerating (default 200ms)")
	return cmd
}
