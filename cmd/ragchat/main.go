package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"ragchat/internal/chunker"
	"ragchat/internal/config"
	"ragchat/internal/domain"
	"ragchat/internal/embedding/ollama"
	"ragchat/internal/embedding/openai"
	"ragchat/internal/llm"
	"ragchat/internal/logger"
	"ragchat/internal/service"
	"ragchat/internal/tui"
	"ragchat/internal/vectorstore/memory"
	"ragchat/internal/vectorstore/sqlite"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		debug   bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/ragchat/config.yaml if not provided)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()
	inputs := flag.Args()

	logger.Init(debug)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "ollama", "":
		emb = ollama.NewClient(ollama.Config{
			BaseURL: cfg.Embedder.Ollama.BaseURL,
			Model:   cfg.Embedder.Ollama.Model,
			Timeout: time.Duration(cfg.Embedder.Ollama.TimeoutSecs) * time.Second,
		})
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	ch, err := chunker.NewWindowChunker(cfg.Chunker.Size, cfg.Chunker.Overlap)
	if err != nil {
		log.Fatalf("invalid chunker config: %v", err)
	}

	var st domain.VectorStore
	switch cfg.VectorStore.Type {
	case "sqlite", "":
		s, err := sqlite.Open(cfg.VectorStore.SQLite.Path)
		if err != nil {
			log.Fatalf("vector store init failed: %v", err)
		}
		defer s.Close()
		st = s
	case "memory":
		st = memory.NewStore()
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	gen := llm.NewOllamaService(llm.Config{
		BaseURL: cfg.Chat.BaseURL,
		Model:   cfg.Chat.Model,
		Timeout: time.Duration(cfg.Chat.TimeoutSecs) * time.Second,
	})

	svc := service.NewRAGService(ch, emb, st)
	summary := ingestFiles(svc, inputs)

	// The TUI owns the terminal from here on; keep log lines out of it.
	if f, err := os.OpenFile("ragchat.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		logger.SetOutput(f)
		defer f.Close()
	}

	m := tui.New(svc, gen, tui.Options{
		ChatModel: cfg.Chat.Model,
		Style:     cfg.Chat.Style,
		TopK:      cfg.Retrieval.TopK,
	}, summary)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

// ingestFiles indexes the given plain-text files and reports what
// happened in a single status line. Per-file failures are logged and do
// not stop the remaining files.
func ingestFiles(svc domain.RAGService, paths []string) string {
	if len(paths) == 0 {
		return "No documents ingested. Start with: ragchat file1.txt [file2.txt ...]"
	}
	ctx := context.Background()
	files, written, failed := 0, 0, 0
	for _, p := range paths {
		if !strings.HasSuffix(strings.ToLower(p), ".txt") {
			logger.Error("skipping %q: %v", p, domain.ErrUnsupportedFile)
			failed++
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			logger.Error("reading %q failed: %v", p, err)
			failed++
			continue
		}
		n, err := svc.Ingest(ctx, filepath.Base(p), string(data), "")
		if err != nil {
			logger.Error("ingesting %q failed: %v", p, err)
			failed++
			continue
		}
		files++
		written += n
	}
	line := fmt.Sprintf("Indexed %d fragments from %d files.", written, files)
	if failed > 0 {
		line += fmt.Sprintf(" %d files skipped (see ragchat.log).", failed)
	}
	return line
}
