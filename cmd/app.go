package cmd

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"

	"github.com/JoeBee/resumesite/internal/config"
	"github.com/JoeBee/resumesite/internal/knowledge"
	"github.com/JoeBee/resumesite/internal/log"
	"github.com/JoeBee/resumesite/internal/rag"
	"github.com/JoeBee/resumesite/internal/resume"
)

// buildEngine wires Genkit, the embedder, the vector store, and the
// question-answering engine. Requires a Gemini API key in the environment;
// callers decide what to do without one.
func buildEngine(ctx context.Context, cfg *config.Config, loader *resume.Loader, logger log.Logger) (*rag.Engine, error) {
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))

	embedder := googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q is not available", cfg.EmbedderModel)
	}

	store, err := knowledge.Open(cfg.IndexDir, knowledge.NewEmbeddingFunc(embedder), logger.With("component", "knowledge"))
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}

	engine := rag.New(g, store, loader, rag.Config{
		ModelName:   cfg.FullModelName(),
		Temperature: cfg.Temperature,
		TopK:        cfg.TopK,
		IndexDir:    cfg.IndexDir,
	}, logger.With("component", "rag"))

	// Registering the flow exposes the ask pipeline to Genkit tooling.
	rag.NewFlow(g, engine)

	return engine, nil
}

// newLoader creates the resume document loader from configuration.
func newLoader(cfg *config.Config) *resume.Loader {
	return resume.NewLoader(cfg.DataDir, cfg.AbbrevFile, cfg.FullFile, cfg.FAQFile)
}
