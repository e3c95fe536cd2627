// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/poiesic/evidex"
	"github.com/poiesic/evidex/ai"
	"github.com/poiesic/evidex/core"
	"github.com/poiesic/evidex/ingestion"
	"github.com/poiesic/evidex/server"
	"github.com/poiesic/evidex/vectorstore/qdrant"
	"github.com/urfave/cli/v2"
)

var storeFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to the embedded vector store directory",
		EnvVars: []string{"EVIDEX_DB"},
		Value:   "evidex-db",
	},
	&cli.StringFlag{
		Name:    "qdrant-url",
		Usage:   "Qdrant server URL; when set, used instead of the embedded store",
		EnvVars: []string{"QDRANT_URL"},
	},
	&cli.StringFlag{
		Name:    "qdrant-api-key",
		Usage:   "Qdrant API key",
		EnvVars: []string{"QDRANT_APIKEY"},
	},
	&cli.StringFlag{
		Name:    "collection",
		Usage:   "Qdrant collection name",
		EnvVars: []string{"QDRANT_COLLECTION"},
		Value:   "papers",
	},
}

var aiFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "embedding-host",
		Usage:   "Encoder service host URL",
		EnvVars: []string{"EVIDEX_EMBEDDING_HOST"},
		Value:   "http://localhost:11434/v1",
	},
	&cli.StringFlag{
		Name:    "query-model",
		Usage:   "Query encoder model name",
		EnvVars: []string{"EVIDEX_QUERY_MODEL"},
		Value:   "medcpt-query",
	},
	&cli.StringFlag{
		Name:    "article-model",
		Usage:   "Article encoder model name",
		EnvVars: []string{"EVIDEX_ARTICLE_MODEL"},
		Value:   "medcpt-article",
	},
	&cli.StringFlag{
		Name:    "llm-host",
		Usage:   "LLM service host URL for intent extraction (defaults to embedding-host)",
		EnvVars: []string{"EVIDEX_LLM_HOST"},
	},
	&cli.StringFlag{
		Name:    "llm-model",
		Usage:   "LLM model name for intent extraction",
		EnvVars: []string{"EVIDEX_LLM_MODEL"},
		Value:   "qwen2.5:3b",
	},
}

func main() {
	app := &cli.App{
		Name:  "evidex",
		Usage: "Biomedical literature evidence retrieval and ranking",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file with configuration",
				Value: ".env",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the evidence search HTTP service",
				Action: serveCommand,
				Flags: append(append([]cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						EnvVars: []string{"EVIDEX_ADDR"},
						Value:   ":8080",
					},
					&cli.StringSliceFlag{
						Name:    "api-key",
						Usage:   "Accepted API key (repeatable); none disables auth",
						EnvVars: []string{"EVIDEX_API_KEYS"},
					},
				}, storeFlags...), aiFlags...),
			},
			{
				Name:      "search",
				Usage:     "Run one evidence search and print the response as JSON",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(append([]cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
					&cli.IntFlag{
						Name:  "year-from",
						Usage: "Earliest publication year (inclusive)",
					},
					&cli.IntFlag{
						Name:  "year-to",
						Usage: "Latest publication year (inclusive)",
					},
					&cli.IntFlag{
						Name:  "min-citations",
						Usage: "Minimum citation count",
					},
					&cli.StringSliceFlag{
						Name:  "publication-type",
						Usage: "Accepted publication type (repeatable, OR semantics)",
					},
					&cli.Float64Flag{
						Name:  "lexical-min",
						Usage: "Lexical score floor",
						Value: 0.05,
					},
					&cli.BoolFlag{
						Name:  "no-rerank",
						Usage: "Disable hybrid reranking",
					},
					&cli.BoolFlag{
						Name:  "no-lexical-filter",
						Usage: "Disable lexical floor filtering",
					},
				}, storeFlags...), aiFlags...),
			},
			{
				Name:      "index",
				Usage:     "Index a JSON file of papers into the vector store",
				ArgsUsage: "<papers.json>",
				Action:    indexCommand,
				Flags: append(append([]cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of papers to encode per batch",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Concurrent encoding workers",
					},
				}, storeFlags...), aiFlags...),
			},
			{
				Name:   "stats",
				Usage:  "Print collection statistics",
				Action: statsCommand,
				Flags:  append(append([]cli.Flag{}, storeFlags...), aiFlags...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) error {
	// Missing .env files are fine; flags and process env still apply.
	if err := godotenv.Load(c.String("env-file")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// newService builds the composition root from the shared store and AI flags.
func newService(c *cli.Context) (*evidex.Service, error) {
	llmHost := c.String("llm-host")
	if llmHost == "" {
		llmHost = c.String("embedding-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithQueryModel(c.String("query-model")),
		ai.WithArticleModel(c.String("article-model")),
		ai.WithLLMHost(llmHost),
		ai.WithLLMModel(c.String("llm-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []evidex.ServiceOption{evidex.WithAIConfig(aiConfig)}
	if url := c.String("qdrant-url"); url != "" {
		opts = append(opts, evidex.WithStore(qdrant.New(qdrant.Config{
			URL:        url,
			APIKey:     c.String("qdrant-api-key"),
			Collection: c.String("collection"),
		})))
	}

	return evidex.NewService(c.String("db"), opts...)
}

func serveCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	searcher, err := svc.NewSearcher()
	if err != nil {
		return err
	}
	intents, err := svc.NewIntentService()
	if err != nil {
		return err
	}

	srv, err := server.New(searcher,
		server.WithStore(svc.Store()),
		server.WithIntentService(intents),
		server.WithAPIKeys(c.StringSlice("api-key")),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(c.String("addr"))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		return srv.Shutdown(context.Background())
	}
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	searcher, err := svc.NewSearcher()
	if err != nil {
		return err
	}

	req := core.NewSearchRequest(query)
	req.Limit = c.Int("limit")
	req.LexicalMin = c.Float64("lexical-min")
	req.UseReranking = !c.Bool("no-rerank")
	req.UseLexicalFilter = !c.Bool("no-lexical-filter")
	if c.IsSet("year-from") {
		v := c.Int("year-from")
		req.YearFrom = &v
	}
	if c.IsSet("year-to") {
		v := c.Int("year-to")
		req.YearTo = &v
	}
	if c.IsSet("min-citations") {
		v := c.Int("min-citations")
		req.MinCitations = &v
	}
	req.PublicationTypes = c.StringSlice("publication-type")

	resp, err := searcher.Search(c.Context, req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func indexCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("papers file argument is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read papers file: %w", err)
	}
	var papers []*core.Paper
	if err := json.Unmarshal(data, &papers); err != nil {
		return fmt.Errorf("failed to parse papers file: %w", err)
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	opts := []ingestion.Option{ingestion.WithBatchSize(c.Int("batch-size"))}
	if c.IsSet("pool-size") {
		opts = append(opts, ingestion.WithPoolSize(c.Int("pool-size")))
	}
	pipeline, err := svc.NewIngestionPipeline(opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	indexed, err := pipeline.IndexPapers(c.Context, papers)
	if err != nil {
		return fmt.Errorf("indexing failed after %d papers: %w", indexed, err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d of %d papers\n", indexed, len(papers))
	return nil
}

func statsCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	count, err := svc.Store().Count(c.Context)
	if err != nil {
		return fmt.Errorf("failed to count collection: %w", err)
	}

	fmt.Printf("papers: %d\n", count)
	return nil
}
