// Package cli implements bizdexctl, an operator tool that talks to the
// directory store through the embedded SDK.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	bizdex "github.com/kailas-cloud/bizdex/pkg/sdk"
)

// directory is the slice of the SDK the commands use.
type directory interface {
	Search(ctx context.Context, p bizdex.SearchParams) ([]bizdex.Business, error)
	Explain(ctx context.Context, p bizdex.SearchParams) ([]bizdex.Explanation, error)
	Featured(ctx context.Context, near *bizdex.Coordinates) ([]bizdex.Business, error)
	Similar(ctx context.Context, id string, near *bizdex.Coordinates, limit int) ([]bizdex.Business, error)
	Get(ctx context.Context, id string) (bizdex.Business, error)
	Seed(ctx context.Context) ([]bizdex.BatchResult, error)
}

// opener connects to the store. The returned func releases it.
type opener func(ctx context.Context, g *globalFlags) (directory, func(), error)

type globalFlags struct {
	driver   string
	addr     string
	password string
	prefix   string
	output   string
	verbose  bool
}

// NewRootCmd returns the root command for bizdexctl.
func NewRootCmd() *cobra.Command {
	return newRootCmd(openSDK)
}

func newRootCmd(open opener) *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "bizdexctl",
		Short:         "bizdex CLI for seeding and querying the business directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if g.output != outputText && g.output != outputJSON {
				return fmt.Errorf("--output must be %s or %s", outputText, outputJSON)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.driver, "driver", envOr("BIZDEX_DRIVER", "valkey"), "storage driver: valkey|redis")
	rootCmd.PersistentFlags().StringVar(&g.addr, "addr", envOr("BIZDEX_ADDR", "localhost:6379"), "store address")
	rootCmd.PersistentFlags().StringVar(&g.password, "password", os.Getenv("BIZDEX_PASSWORD"), "store password")
	rootCmd.PersistentFlags().StringVar(&g.prefix, "key-prefix", "", "key prefix (default bizdex:)")
	rootCmd.PersistentFlags().StringVarP(&g.output, "output", "o", outputText, "output format: text|json")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log SDK operations to stderr")

	rootCmd.AddCommand(newSeedCmd(g, open))
	rootCmd.AddCommand(newSearchCmd(g, open))
	rootCmd.AddCommand(newFeaturedCmd(g, open))
	rootCmd.AddCommand(newGetCmd(g, open))
	rootCmd.AddCommand(newSimilarCmd(g, open))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func openSDK(ctx context.Context, g *globalFlags) (directory, func(), error) {
	opts := []bizdex.Option{bizdex.WithKeyPrefix(g.prefix)}
	switch g.driver {
	case "valkey":
		opts = append(opts, bizdex.WithValkey(g.addr, g.password))
	case "redis":
		opts = append(opts, bizdex.WithRedis(g.addr, g.password))
	default:
		return nil, nil, fmt.Errorf("unknown driver %q", g.driver)
	}
	if g.verbose {
		opts = append(opts, bizdex.WithLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	client, err := bizdex.New(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client.Businesses(), client.Close, nil
}

// withDirectory opens the store for the duration of fn.
func withDirectory(cmd *cobra.Command, g *globalFlags, open opener, fn func(d directory, out io.Writer) error) error {
	d, closeFn, err := open(cmd.Context(), g)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer closeFn()
	return fn(d, cmd.OutOrStdout())
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
