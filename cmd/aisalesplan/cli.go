package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/DennisFaucher/aisalesplan/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Researcher aisalesplan.Researcher
	Research   aisalesplan.ResearchService
	Exporter   aisalesplan.Exporter
	Converter  aisalesplan.Converter
	Metrics    *prometheus.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `name:"db" env:"AISALESPLAN_DB" default:"${db_path}" help:"SQLite database path for research history"`
	Backend   string `enum:"perplexity,gemini" default:"perplexity" env:"AISALESPLAN_BACKEND" help:"AI search backend (perplexity, gemini)"`
	Model     string `env:"AISALESPLAN_MODEL" help:"Override the backend model"`
	LogLevel  string `enum:"debug,info,warn,error" default:"info" help:"Log level"`
	LogFormat string `enum:"text,json" default:"text" help:"Log format"`
	LogFile   string `type:"path" help:"Write logs to a rotated file instead of stderr"`

	Serve   ServeCmd   `cmd:"" help:"Run the web front-end"`
	Search  SearchCmd  `cmd:"" help:"Research a customer and print the markdown answer"`
	Export  ExportCmd  `cmd:"" help:"Research a customer and write a Word document"`
	History HistoryCmd `cmd:"" help:"List stored research"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string  `default:":5000" env:"AISALESPLAN_ADDR" help:"Listen address"`
	Rate    float64 `default:"1" help:"Searches and exports per second allowed per client (0 disables limiting)"`
	Burst   int     `default:"5" help:"Requests a client may make at once before being limited"`
	Metrics bool    `default:"true" negatable:"" help:"Serve Prometheus metrics at /metrics"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Customer string `arg:"" help:"Customer name"`
	Theme    string `default:"${default_theme}" help:"Research theme"`
	JSON     bool   `name:"json" help:"Print the full result as JSON"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Customer string `arg:"" help:"Customer name"`
	Theme    string `default:"${default_theme}" help:"Research theme"`
	Out      string `short:"o" type:"path" help:"Output file (default: <customer>_<theme>_Research.docx)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Customer string `help:"Only show research for this customer"`
	Limit    int    `default:"20" help:"Maximum number of entries"`
}
