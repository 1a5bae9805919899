package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/apiverify/reportgen/internal/config"
	"github.com/apiverify/reportgen/internal/layout"
	"github.com/apiverify/reportgen/internal/model"
	"github.com/apiverify/reportgen/internal/render"
	"github.com/apiverify/reportgen/internal/sample"
	"github.com/apiverify/reportgen/internal/server"
	"github.com/apiverify/reportgen/internal/stats"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "reportgen",
		Short: "Reportgen — API validation results rendered as PDF reports",
		Long: `Reportgen turns API schema validation results into paginated
PDF reports with summary metrics, a match distribution chart, and
categorized field-detail tables.`,
		Version: version,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newSchemaCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// serveParams holds the parsed flags for the serve command.
type serveParams struct {
	configPath string
	addr       string
	profile    string
}

// runServe is the extracted, testable body of the serve command.
func runServe(ctx context.Context, p serveParams) error {
	cfg, err := config.Load(p.configPath)
	if err != nil {
		return err
	}
	if p.addr != "" {
		cfg.Server.Addr = p.addr
	}
	if p.profile != "" {
		cfg.Render.Profile = p.profile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("listening", "addr", cfg.Server.Addr, "profile", cfg.Render.Profile)
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newServeCmd() *cobra.Command {
	var p serveParams

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the PDF renderer over HTTP",
		Long: `Start the HTTP server exposing POST /render (validation JSON in,
PDF bytes out) and GET /health.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, p)
		},
	}

	cmd.Flags().StringVarP(&p.configPath, "config", "c", "",
		"path to YAML config file")
	cmd.Flags().StringVar(&p.addr, "addr", "",
		"listen address (overrides config)")
	cmd.Flags().StringVar(&p.profile, "profile", "",
		"layout profile: full or grouped (overrides config)")

	return cmd
}

// renderParams holds the parsed flags for the render command.
type renderParams struct {
	configPath string
	source     string
	output     string
	profile    string
	stdout     io.Writer
}

// runRender is the extracted, testable body of the render command:
// fetch the validation JSON (falling back to the embedded sample),
// render it, and write the PDF to a local file.
func runRender(p renderParams) error {
	cfg, err := config.Load(p.configPath)
	if err != nil {
		return err
	}
	if p.source != "" {
		cfg.Source.URL = p.source
	}
	if p.output != "" {
		cfg.Source.Output = p.output
	}
	if p.profile != "" {
		cfg.Render.Profile = p.profile
	}

	profile, err := layout.ProfileByName(cfg.Render.Profile)
	if err != nil {
		return err
	}

	rep := fetchOrSample(cfg.Source.URL)

	blocks := layout.Build(rep, profile, layout.Options{
		ClipLimit: cfg.Render.ClipLimit,
		WrapEvery: cfg.Render.WrapEvery,
	})
	data, err := render.New().Render(blocks)
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfg.Source.Output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Source.Output, err)
	}

	writeSummary(p.stdout, rep, cfg.Source.Output, len(data))
	return nil
}

// fetchOrSample retrieves the validation JSON from url, or the
// embedded sample when the source is unset or unreachable.
func fetchOrSample(url string) *model.ValidationReport {
	if url != "" {
		rep, err := fetchReport(url)
		if err == nil {
			return rep
		}
		logger.Warn("source unavailable, using embedded sample", "url", url, "err", err)
	}
	rep, err := sample.Report()
	if err != nil {
		// The embedded sample is static; a decode failure here is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded sample is invalid: %v", err))
	}
	return rep
}

func fetchReport(url string) (*model.ValidationReport, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, err
	}
	return model.Decode(body)
}

func newRenderCmd() *cobra.Command {
	p := renderParams{stdout: os.Stdout}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a validation report to a local PDF file",
		Long: `Fetch validation JSON from an HTTP source (or use the embedded
sample when no source is reachable) and write the rendered PDF to a
local file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(p)
		},
	}

	cmd.Flags().StringVarP(&p.configPath, "config", "c", "",
		"path to YAML config file")
	cmd.Flags().StringVar(&p.source, "source", "",
		"HTTP source for the validation JSON (overrides config)")
	cmd.Flags().StringVarP(&p.output, "out", "o", "",
		"output PDF filename (overrides config)")
	cmd.Flags().StringVar(&p.profile, "profile", "",
		"layout profile: full or grouped (overrides config)")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for the validation payload",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the payload
accepted by POST /render and the render command. Useful for
validating producers or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), model.Schema)
			return err
		},
	}
}

// writeSummary prints a short styled terminal summary after a
// standalone render.
func writeSummary(w io.Writer, rep *model.ValidationReport, output string, size int) {
	if w == nil {
		return
	}
	counts, total := stats.FromReport(rep)
	summary := stats.Summarize(counts, total)
	styles := summaryStyles()

	verdict := styles.warn
	switch summary.Severity {
	case stats.SeveritySuccess:
		verdict = styles.good
	case stats.SeverityError:
		verdict = styles.bad
	}

	fmt.Fprintln(w, styles.header.Render("=== "+rep.Title()+" ==="))
	fmt.Fprintf(w, "    %s\n", verdict.Render(summary.Text))
	fmt.Fprintf(w, "    Fields: %d matched, %d unmatched, %d missing, %d extra (of %d)\n",
		counts.Matched, counts.Unmatched, counts.Missing, counts.Extra, total)
	fmt.Fprintf(w, "    %s\n", styles.muted.Render(
		fmt.Sprintf("Wrote %s (%d bytes)", output, size)))
}
