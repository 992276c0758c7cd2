package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syssam/resgen/compiler"
)

func generateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [patterns]",
		Short: "Generate the files of the resource groups matched by patterns",
		Example: "  resgen generate ./board/...\n" +
			"  resgen generate -e stm32 --features extract/take ./...\n" +
			"  resgen generate board/pins.resgen.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, v)
			if err != nil {
				return err
			}
			cfg, err := s.genConfig()
			if err != nil {
				return err
			}
			c := compiler.New(cfg, compiler.WithDir(s.Dir), compiler.WithLogger(slog.Default()))
			m, err := c.Generate(cmd.Context(), s.patterns(args)...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d written, %d unchanged, %d cached\n",
				green.Sprint("resgen:"), m.FilesGenerated, m.FilesUnchanged, m.FilesCached)
			return nil
		},
	}
	addGeneratorFlags(cmd.Flags())
	return cmd
}
