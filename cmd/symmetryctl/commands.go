package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/symmetry-wiki/symmetry-desktop/internal/api"
	"github.com/symmetry-wiki/symmetry-desktop/internal/article"
	"github.com/symmetry-wiki/symmetry-desktop/internal/comparison"
	"github.com/symmetry-wiki/symmetry-desktop/internal/config"
	"github.com/symmetry-wiki/symmetry-desktop/internal/logging"
	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
	"github.com/symmetry-wiki/symmetry-desktop/internal/platform"
)

// options holds the global flags.
type options struct {
	configPath string
	baseURL    string
	jsonOutput bool
	logJSON    bool
	timeout    time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "symmetryctl",
		Short:         "Fetch, translate and compare Wikipedia articles through the Symmetry backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to the app config file (default: SYMMETRY_CONFIG or ./config.json)")
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Backend base URL; skips config resolution")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Write logs to stderr as JSON")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout (0 means none)")

	rootCmd.AddCommand(
		newFetchCmd(opts),
		newTranslateCmd(opts),
		newCompareCmd(opts),
	)
	return rootCmd
}

func newFetchCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch <article-url>",
		Short: "Fetch a source article and the languages it is available in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := opts.client(cmd)
			if err != nil {
				return err
			}

			src, err := article.NewService(client, logger).FetchSourceArticle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output != "" {
				return saveText(cmd, logger, output, src.Text)
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), src)
			}
			return writeSourceArticle(cmd.OutOrStdout(), src)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the article text to a file")
	return cmd
}

func newTranslateCmd(opts *options) *cobra.Command {
	var language, output string

	cmd := &cobra.Command{
		Use:   "translate <title>",
		Short: "Fetch an article in a target language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := opts.client(cmd)
			if err != nil {
				return err
			}

			title := args[0]
			if fromURL, ok := article.TitleFromURL(title); ok {
				title = fromURL
			}

			translated, err := article.NewService(client, logger).FetchTranslatedArticle(cmd.Context(), title, language)
			if err != nil {
				return err
			}

			if output != "" {
				return saveText(cmd, logger, output, translated.Text)
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), translated)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), translated.Text)
			return err
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Target language code, e.g. fr")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the translated text to a file")
	_ = cmd.MarkFlagRequired("language")
	return cmd
}

func newCompareCmd(opts *options) *cobra.Command {
	var textA, textB, urlA, urlB string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two article texts",
		Long: `Compare two article texts. Pass the texts directly with --text-a/--text-b
or let the backend fetch them with --url-a/--url-b.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := opts.client(cmd)
			if err != nil {
				return err
			}

			if urlA != "" {
				a, b, err := article.FetchPair(cmd.Context(), article.NewService(client, logger), urlA, urlB)
				if err != nil {
					return err
				}
				textA, textB = a.Text, b.Text
			}

			result, err := comparison.NewService(client, logger).Compare(cmd.Context(), textA, textB)
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeComparison(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&textA, "text-a", "", "First article text")
	cmd.Flags().StringVar(&textB, "text-b", "", "Second article text")
	cmd.Flags().StringVar(&urlA, "url-a", "", "First article URL")
	cmd.Flags().StringVar(&urlB, "url-b", "", "Second article URL")
	cmd.MarkFlagsRequiredTogether("text-a", "text-b")
	cmd.MarkFlagsRequiredTogether("url-a", "url-b")
	cmd.MarkFlagsMutuallyExclusive("text-a", "url-a")
	cmd.MarkFlagsOneRequired("text-a", "url-a")
	return cmd
}

// client builds the API client from --base-url or the resolved app config.
func (o *options) client(cmd *cobra.Command) (*api.Client, *slog.Logger, error) {
	logger := logging.NewTextLogger(cmd.ErrOrStderr())
	if o.logJSON {
		logger = logging.NewJSONLogger(cmd.ErrOrStderr())
	}

	baseURL := o.baseURL
	if baseURL == "" {
		provider, err := config.Bootstrap(cmd.Context(), o.configPath, logger)
		if err != nil {
			return nil, nil, err
		}
		if baseURL, err = provider.GetBackendBaseURL(); err != nil {
			return nil, nil, err
		}
	}

	client, err := api.NewClient(baseURL,
		api.WithHTTPClient(&http.Client{Timeout: o.timeout}),
		api.WithLogger(logger),
		api.WithUserAgent("symmetryctl/"+version))
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("using backend", slog.String("base_url", client.BaseURL()))
	return client, logger, nil
}

// saveText writes text to path and reports where it went.
func saveText(cmd *cobra.Command, logger *slog.Logger, path, text string) error {
	if err := platform.WriteTextFile(path, text); err != nil {
		return err
	}
	logger.Info("article text saved", slog.String("path", path), slog.Int("length", len(text)))
	_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSourceArticle(w io.Writer, src *model.SourceArticle) error {
	languages := make([]string, 0, len(src.AvailableLanguages))
	for _, l := range src.AvailableLanguages {
		languages = append(languages, fmt.Sprintf("%s (%s)", l.Value, l.Label))
	}

	_, err := fmt.Fprintf(w, "Title: %s\nLanguages: %s\n\n%s\n", src.Title, strings.Join(languages, ", "), src.Text)
	return err
}

// writeComparison prints every passage pair, marking missing tokens as [-x-]
// and extra tokens as [+x+].
func writeComparison(w io.Writer, result *model.ComparisonResult) error {
	if len(result.Comparisons) == 0 {
		_, err := fmt.Fprintln(w, "No comparable passages found")
		return err
	}

	var errs []error
	missing, extra := 0, 0
	for i, c := range result.Comparisons {
		m, e := c.HighlightCounts()
		missing += m
		extra += e

		_, err := fmt.Fprintf(w, "#%d\n  A: %s\n  B: %s\n", i+1,
			renderSegments(c.LeftSegments(), "[-", "-]"),
			renderSegments(c.RightSegments(), "[+", "+]"))
		errs = append(errs, err)
	}

	_, err := fmt.Fprintf(w, "\n%d missing, %d extra\n", missing, extra)
	errs = append(errs, err)
	return errors.Join(errs...)
}

func renderSegments(segments []model.Segment, openMark, closeMark string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Highlighted {
			parts = append(parts, openMark+s.Token+closeMark)
			continue
		}
		parts = append(parts, s.Token)
	}
	return strings.Join(parts, " ")
}
