package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/DennisFaucher/aisalesplan/etree"
	"github.com/DennisFaucher/aisalesplan/gemini"
	"github.com/DennisFaucher/aisalesplan/goldmark"
	"github.com/DennisFaucher/aisalesplan/goquery"
	"github.com/DennisFaucher/aisalesplan/htmltomarkdown"
	"github.com/DennisFaucher/aisalesplan/perplexity"
	"github.com/DennisFaucher/aisalesplan/prometheus"
	"github.com/DennisFaucher/aisalesplan/research"
	aslog "github.com/DennisFaucher/aisalesplan/slog"
	"github.com/DennisFaucher/aisalesplan/sqlite"
	"github.com/alecthomas/kong"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path default. Overridden by --db or AISALESPLAN_DB.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Getenv reads API keys. Defaults to os.Getenv.
	Getenv func(string) string

	// Searcher replaces the configured search backend for end-to-end testing.
	Searcher aisalesplan.Searcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("aisalesplan"),
		kong.Description("Research a customer's public plans and map them to WWT capabilities."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"db_path": m.DBPath, "default_theme": aisalesplan.DefaultTheme},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'aisalesplan --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cli.LogLevel, cli.LogFormat, cli.LogFile, stderr)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set AISALESPLAN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	searcher, err := m.searcher(ctx, cli.Backend, cli.Model)
	if err != nil {
		return err
	}

	metrics := prometheus.NewMetrics()
	searcher = prometheus.NewInstrumentedSearcher(searcher, cli.Backend, metrics)
	searcher = aslog.NewLoggingSearcher(searcher, cli.Backend, logger)

	store := aslog.NewLoggingResearchService(sqlite.NewResearchService(m.DB), logger)

	deps.Logger = logger
	deps.Metrics = metrics
	deps.Research = store
	deps.Researcher = aslog.NewLoggingResearcher(&research.Service{
		Searcher: searcher,
		Renderer: goldmark.NewRenderer(goquery.NewTransformer()),
		Store:    store,
		Logger:   logger,
	}, logger)
	deps.Exporter = aslog.NewLoggingExporter(etree.NewExporter(), logger)
	deps.Converter = htmltomarkdown.NewConverter()

	return kongCtx.Run(deps)
}

// searcher builds the search backend. A missing API key is not fatal: the
// backend reports it on every search so the web UI can show it.
func (m *Main) searcher(ctx context.Context, backend, model string) (aisalesplan.Searcher, error) {
	if m.Searcher != nil {
		return m.Searcher, nil
	}

	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	switch backend {
	case "gemini":
		if model == "" {
			model = gemini.DefaultModel
		}
		apiKey := getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return gemini.NewSearcher(nil, model), nil
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewSearcher(client, model), nil
	default:
		var opts []perplexity.Option
		if model != "" {
			opts = append(opts, perplexity.WithModel(model))
		}
		return perplexity.NewSearcher(getenv("PERPLEXITY_API_KEY"), opts...), nil
	}
}

func defaultDBPath() string {
	if path := os.Getenv("AISALESPLAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "aisalesplan.db"
	}
	dir := filepath.Join(home, ".aisalesplan")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "aisalesplan.db")
}

// discardLogger is used by commands run without a configured logger.
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
