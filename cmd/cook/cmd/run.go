package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"recipe-cook-api/core/cooker"
	"recipe-cook-api/core/recipe"
)

type runOptions struct {
	recipePath  string
	dataPath    string
	params      []string
	batch       bool
	multithread bool
	stream      bool
	compact     bool
}

func newRunCommand(global *globalOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Cook a document with a recipe",
		Long: `Runs a recipe against a JSON or XML document and prints the models.

Without --stream the models are printed as one JSON array. With --stream
each model is printed as a JSON line as soon as it is populated.

Use "-" as --data to read the document from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCook(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.recipePath, "recipe", "r", "", "recipe file (JSON or YAML)")
	cmd.Flags().StringVarP(&opts.dataPath, "data", "d", "", "document file, or - for stdin")
	cmd.Flags().StringArrayVarP(&opts.params, "param", "p", nil, "query parameter, repeatable ($$par0$$, $$par1$$, ...)")
	cmd.Flags().BoolVar(&opts.batch, "batch", false, "deliver all models in one callback")
	cmd.Flags().BoolVar(&opts.multithread, "multithread", false, "populate models in parallel")
	cmd.Flags().BoolVar(&opts.stream, "stream", false, "print models as JSON lines while cooking")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "print the array without indentation")
	_ = cmd.MarkFlagRequired("recipe")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runCook(cmd *cobra.Command, global *globalOptions, opts *runOptions) error {
	raw, err := readInput(opts.recipePath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	r, err := recipe.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid recipe %s: %w", opts.recipePath, err)
	}
	data, err := readInput(opts.dataPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	engine := global.newEngine(cmd.ErrOrStderr())
	defer engine.Close()

	if opts.stream {
		return streamModels(cmd.Context(), engine, r, string(data), opts.params, cmd.OutOrStdout())
	}

	engine.ConfigureSettings(opts.batch, opts.multithread)

	var (
		models  []interface{}
		cookErr error
	)
	cb := cooker.CallbackFuncs{
		Cooked: func(_ *recipe.Recipe, output interface{}, _ map[string]interface{}, _ bool) {
			switch v := output.(type) {
			case nil:
			case []interface{}:
				models = append(models, v...)
			default:
				models = append(models, v)
			}
		},
		Error: func(_ *recipe.Recipe, err error, _ string) {
			cookErr = err
		},
	}
	if err := engine.CookRecipe(r, string(data), cb, nil, opts.params); err != nil {
		return err
	}
	if cookErr != nil {
		return cookErr
	}
	if models == nil {
		models = []interface{}{}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(models)
}

func streamModels(ctx context.Context, engine *cooker.Engine, r *recipe.Recipe, data string, params []string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := engine.ValidateRecipe(r); err != nil {
		return err
	}

	models, errc := engine.CookRecipeStream(ctx, r, data, params)
	enc := json.NewEncoder(out)
	for model := range models {
		if err := enc.Encode(model); err != nil {
			return err
		}
	}
	return <-errc
}
