package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recipe-cook-api/core/cooker"
)

func newInfoCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "List registered parsers, translators and models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := global.newEngine(cmd.ErrOrStderr())
			defer engine.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Engine:      %s\n", cooker.Name)
			fmt.Fprintf(out, "Formats:     %s\n", strings.Join(engine.ParserFormats(), ", "))
			fmt.Fprintf(out, "Translators: %s\n", strings.Join(engine.Translators().Names(), ", "))
			fmt.Fprintf(out, "Models:      %s\n", strings.Join(engine.Models().Names(), ", "))
			return nil
		},
	}
}
