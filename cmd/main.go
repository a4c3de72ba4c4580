package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"email-rag/internal/chromemdb"
	"email-rag/internal/config"
	"email-rag/internal/db"
	"email-rag/internal/embedding"
	"email-rag/internal/helper"
	"email-rag/internal/importer"
	"email-rag/internal/llmservice"
	"email-rag/internal/models"
	"email-rag/internal/rag"
	transport "email-rag/internal/transport/http"
)

var configFilePath string

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	rootCmd := &cobra.Command{
		Use:   "email-rag",
		Short: "Retrieval-augmented question answering over stored emails",
	}
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", "./configs/config.yaml", "Path to the config file")

	rootCmd.AddCommand(serveCmd(), initDBCmd(), ingestCmd(), importMBoxCmd(), askCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the wired pipeline pieces shared by the commands.
type app struct {
	cfg       *config.Config
	pingStore func(ctx context.Context) error
	ingestor  *rag.Ingestor
	retriever *rag.Retriever
}

func buildApp() (*app, error) {
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	store, ping, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		return nil, fmt.Errorf("error initializing embedder: %w", err)
	}

	return &app{
		cfg:       cfg,
		pingStore: ping,
		ingestor:  rag.NewIngestor(store, embedder, cfg.RAG.ChunkSize),
		retriever: rag.NewRetriever(store, embedder),
	}, nil
}

func buildStore(cfg *config.Config) (rag.Store, func(ctx context.Context) error, error) {
	switch cfg.RAG.Store {
	case "chromem":
		store, err := chromemdb.NewStore(cfg.RAG.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening chromem store: %w", err)
		}
		return store, nil, nil
	default:
		sqldb, err := db.ConnectDB(&cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("error connecting to database: %w", err)
		}
		bunDB := db.NewDB(sqldb, cfg.Database.Debug)
		return db.NewStore(bunDB), pingFunc(sqldb), nil
	}
}

func pingFunc(sqldb *sql.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error { return sqldb.PingContext(ctx) }
}

func buildAnswerer(a *app) (*rag.Answerer, error) {
	generator, err := llmservice.NewClient(&a.cfg.ChatLLM)
	if err != nil {
		return nil, fmt.Errorf("error initializing generator: %w", err)
	}
	return rag.NewAnswerer(a.retriever, generator, a.cfg.RAG.PromptTemplate, a.cfg.RAG.MatchThreshold, a.cfg.RAG.MatchCount), nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			answerer, err := buildAnswerer(a)
			if err != nil {
				return err
			}
			router := transport.NewRouter(a.cfg.Server.GinMode, a.ingestor, answerer, a.pingStore)
			log.Info().Str("addr", a.cfg.Server.Addr).Msg("Starting HTTP server")
			return router.Run(a.cfg.Server.Addr)
		},
	}
}

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the database schema (Supabase store only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFilePath)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			if cfg.RAG.Store == "chromem" {
				log.Info().Msg("chromem store needs no schema")
				return nil
			}
			sqldb, err := db.ConnectDB(&cfg.Database)
			if err != nil {
				return fmt.Errorf("error connecting to database: %w", err)
			}
			store := db.NewStore(db.NewDB(sqldb, cfg.Database.Debug))
			if err := store.InitSchema(cmd.Context()); err != nil {
				return fmt.Errorf("error initializing database: %w", err)
			}
			log.Info().Msg("Schema initialized")
			return nil
		},
	}
}

func ingestCmd() *cobra.Command {
	var filePath string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest one email from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("error reading email file: %w", err)
			}
			var email models.Email
			if err := json.Unmarshal(data, &email); err != nil {
				return fmt.Errorf("error parsing email file: %w", err)
			}

			a, err := buildApp()
			if err != nil {
				return err
			}
			emailID, err := a.ingestor.Ingest(cmd.Context(), &email)
			if err != nil {
				return err
			}
			log.Info().Int64("email_id", emailID).Msg("Email ingested")
			return nil
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "Path to the email JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func importMBoxCmd() *cobra.Command {
	var (
		filePath string
		limit    int
		dryRun   bool
	)
	cmd := &cobra.Command{
		Use:   "import-mbox",
		Short: "Bulk-ingest emails from an mbox archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			result, err := importer.ImportMBox(cmd.Context(), a.ingestor, importer.MBoxImportOptions{
				Path:          filePath,
				LimitMessages: limit,
				DryRun:        dryRun,
			})
			if err != nil {
				return err
			}
			helper.PrettyPrint(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "Path to the mbox file")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum messages to import (0 = all)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse only, do not ingest")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func askCmd() *cobra.Command {
	var (
		threshold float64
		count     int
	)
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a question from the stored emails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(args[0])

			a, err := buildApp()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				a.cfg.RAG.MatchThreshold = threshold
			}
			if cmd.Flags().Changed("count") {
				a.cfg.RAG.MatchCount = count
			}
			answerer, err := buildAnswerer(a)
			if err != nil {
				return err
			}

			answer, err := answerer.Answer(cmd.Context(), question)
			if err != nil {
				return err
			}

			log.Info().Msg("Assistant: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
			fmt.Printf("%s\n\n", answer)
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", models.DefaultMatchThreshold, "Minimum similarity for matches")
	cmd.Flags().IntVar(&count, "count", models.DefaultMatchCount, "Candidate pool size before the top cut")
	return cmd
}
