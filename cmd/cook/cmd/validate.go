package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipe-cook-api/core/errors"
	"recipe-cook-api/core/recipe"
)

func newValidateCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <recipe>...",
		Short: "Check recipe files for missing tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := global.newEngine(cmd.ErrOrStderr())
			defer engine.Close()

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				raw, err := readInput(path, cmd.InOrStdin())
				if err == nil {
					var r *recipe.Recipe
					if r, err = recipe.Parse(raw); err == nil {
						_, err = engine.ValidateRecipe(r)
					}
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: invalid (%s): %v\n", path, errors.Kind(err), err)
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", path)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d recipes are invalid", failed, len(args))
			}
			return nil
		},
	}
}
