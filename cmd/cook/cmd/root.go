package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"recipe-cook-api/core/content"
	"recipe-cook-api/core/cooker"
	"recipe-cook-api/infrastructure/logger"
)

type globalOptions struct {
	logLevel     string
	extraParsers bool
	workers      int
}

// NewRootCommand builds the cook command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "cook",
		Short: "Cook JSON and XML documents into models with recipes",
		Long: `cook runs extraction recipes against local JSON or XML documents and
prints the resulting models as JSON.

Examples:
  cook run --recipe categories.json --data feed.xml
  cook run --recipe items.yaml --data - --param 42 --multithread
  cook validate recipes/*.json
  cook info`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.extraParsers, "extra-parsers", false, "register the rss, html and gjson parsers")
	root.PersistentFlags().IntVar(&opts.workers, "workers", 4, "workers used by --multithread")

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newValidateCommand(opts))
	root.AddCommand(newInfoCommand(opts))
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// newEngine creates an engine with the content models registered. Logs go to
// stderr so stdout stays parseable.
func (o *globalOptions) newEngine(stderr io.Writer) *cooker.Engine {
	logs := logger.New(logger.Options{
		Level:  o.logLevel,
		Format: "text",
		Output: stderr,
	})

	opts := []cooker.Option{
		cooker.WithLogger(logs),
		cooker.WithWorkers(o.workers),
	}
	if o.extraParsers {
		opts = append(opts, cooker.WithExtraParsers())
	}

	engine := cooker.New(opts...)
	content.Register(engine)
	return engine
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
