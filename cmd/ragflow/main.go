package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"ragflow/internal/chunker"
	"ragflow/internal/config"
	"ragflow/internal/domain"
	"ragflow/internal/embedding"
	"ragflow/internal/generate"
	"ragflow/internal/index"
	"ragflow/internal/logger"
	"ragflow/internal/tui"
	"ragflow/internal/workflow"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var question string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/ragflow/config.yaml if not provided)")
	flag.StringVar(&question, "ask", "", "Ask a single question and exit instead of starting the interactive UI")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: ragflow [--config=config.yaml] [--ask=\"question\"] file1.txt [file2.txt ...]")
		os.Exit(1)
	}

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
	logger.Init(cfg.LogLevel)

	// Assemble components
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = embedding.NewTFIDF()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := embedding.NewOpenAI(embedding.OpenAIConfig{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	case "ollama":
		oc := cfg.Embedder.Ollama
		if oc == nil {
			oc = &config.OllamaConfig{}
		}
		client, err := embedding.NewOllama(oc.Model, oc.BaseURL, time.Duration(oc.TimeoutSecs)*time.Second)
		if err != nil {
			log.Fatalf("ollama embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var idx domain.VectorIndex
	switch cfg.Index.Type {
	case "memory", "":
		idx = index.NewMemory()
	case "qdrant":
		if cfg.Index.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		idx = index.NewQdrant(index.QdrantConfig{
			URL:        cfg.Index.Qdrant.URL,
			APIKey:     cfg.Index.Qdrant.APIKey,
			Collection: cfg.Index.Qdrant.Collection,
			Timeout:    time.Duration(cfg.Index.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatalf("unknown index: %s", cfg.Index.Type)
	}

	var gen domain.Generator
	switch cfg.Generator.Type {
	case "none", "":
		gen = nil
	case "ollama":
		oc := cfg.Generator.Ollama
		if oc == nil {
			oc = &config.OllamaConfig{}
		}
		client, err := generate.NewOllama(oc.Model, oc.BaseURL, time.Duration(oc.TimeoutSecs)*time.Second)
		if err != nil {
			log.Fatalf("ollama generator init failed: %v", err)
		}
		gen = client
	case "openai":
		if cfg.Generator.OpenAI == nil {
			log.Fatalf("openai generator config missing")
		}
		client, err := generate.NewOpenAI(generate.OpenAIConfig{
			BaseURL:   cfg.Generator.OpenAI.BaseURL,
			APIKeyEnv: cfg.Generator.OpenAI.APIKeyEnv,
			Model:     cfg.Generator.OpenAI.Model,
			Timeout:   time.Duration(cfg.Generator.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai generator init failed: %v", err)
		}
		gen = client
	default:
		log.Fatalf("unknown generator: %s", cfg.Generator.Type)
	}

	engine := workflow.New(
		chunker.NewWindowChunker(cfg.Chunker.Size, cfg.Chunker.OverlapFraction),
		emb, idx, gen,
		workflow.Options{
			TopK:     cfg.Workflow.TopK,
			Observer: workflow.NewLogObserver(),
		},
	)

	ctx := context.Background()
	for _, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		meta := map[string]string{"path": path, "name": filepath.Base(path)}
		if _, err := engine.Ingest(ctx, string(data), meta); err != nil {
			log.Fatalf("ingest %s: %v", path, err)
		}
	}

	if question != "" {
		answer, err := engine.Ask(ctx, question)
		if err != nil {
			log.Fatalf("ask failed: %v", err)
		}
		fmt.Println(answer.Answer)
		return
	}

	m := tui.New(engine, engine.CorpusSummary(3))
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
