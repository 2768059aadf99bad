// Command hql compiles a query and runs it against an HTML document taken
// from an argument, a file, a URL, or stdin.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xylonx/hql/html"
	"github.com/xylonx/hql/network"
	"github.com/xylonx/hql/querier"
)

var (
	flagQuery   string
	flagFile    string
	flagURL     string
	flagVerbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "hql [document]",
	Short: "query HTML documents with selector pipelines",
	Long: `hql compiles a selector pipeline and runs it against an HTML document.

The document comes from the positional argument, --file, --url, or stdin:

  hql --hql '@flat() | @attr(`+ "`href`" + `) | #extractAttr(`+ "`href`" + `)' --url https://example.com
  cat page.html | hql --hql '@path(` + "`/body//div/a`" + `) | #text() | #trim()'`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if flagVerbose {
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&flagQuery, "hql", "", "query to run (required)")
	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "read the document from a file")
	rootCmd.Flags().StringVarP(&flagURL, "url", "u", "", "fetch the document from a URL")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.MarkFlagRequired("hql")
}

func run(cmd *cobra.Command, args []string) error {
	q, err := querier.TryParse(flagQuery)
	if err != nil {
		return fmt.Errorf("compile query: %w", err)
	}
	q.SetLogger(logger)

	doc, err := loadDocument(cmd.Context(), args)
	if err != nil {
		return err
	}
	doc.SetLogger(logger)

	for _, ref := range q.QueryDocument(doc) {
		fmt.Fprintln(cmd.OutOrStdout(), ref.String())
	}
	return nil
}

// loadDocument resolves the document source. Precedence: positional
// argument, then --file, then --url, then stdin.
func loadDocument(ctx context.Context, args []string) (*html.Document, error) {
	switch {
	case len(args) == 1:
		return html.ParseDocumentString(args[0])
	case flagFile != "":
		f, err := os.Open(flagFile)
		if err != nil {
			return nil, fmt.Errorf("open document: %w", err)
		}
		defer f.Close()
		return html.ParseDocument(f)
	case flagURL != "":
		client, err := network.NewClient()
		if err != nil {
			return nil, err
		}
		logger.Debug("fetching document", zap.String("url", flagURL))
		return client.FetchDocument(ctx, flagURL)
	default:
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return html.ParseDocumentString(string(src))
	}
}

func main() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
