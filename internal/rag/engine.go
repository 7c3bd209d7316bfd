// Package rag implements the question-answering engine: it lazily builds a
// retrieval index from the full resume, retrieves the passages most similar
// to a question, and asks the configured Gemini model to answer from them.
package rag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"google.golang.org/genai"

	"github.com/JoeBee/resumesite/internal/knowledge"
	"github.com/JoeBee/resumesite/internal/log"
	"github.com/JoeBee/resumesite/internal/resume"
)

// fingerprintFile records the source-document hash the index was built from.
const fingerprintFile = "fingerprint"

// Config holds the tunables for the engine.
type Config struct {
	ModelName   string  // provider-qualified, e.g. "googleai/gemini-2.5-flash"
	Temperature float32 // generation temperature
	TopK        int     // passages retrieved per question
	IndexDir    string  // directory holding the persisted index + fingerprint
}

// Engine answers questions about the resume.
//
// The retrieval index is built on the first question and reused afterwards.
// A fingerprint of the source documents is stored next to the index; when it
// no longer matches, the index is rebuilt so answers always reflect the
// current documents.
type Engine struct {
	g      *genkit.Genkit
	store  *knowledge.Store
	loader *resume.Loader
	cfg    Config
	logger log.Logger

	mu    sync.Mutex // serializes index builds
	ready bool
}

// New creates an Engine. The store must be backed by cfg.IndexDir.
func New(g *genkit.Genkit, store *knowledge.Store, loader *resume.Loader, cfg Config, logger log.Logger) *Engine {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Engine{
		g:      g,
		store:  store,
		loader: loader,
		cfg:    cfg,
		logger: logger,
	}
}

// Answer answers a question using retrieved resume passages.
//
// Blank questions return ErrEmptyQuestion. Upstream quota rejections are
// wrapped in ErrQuotaExhausted so the HTTP layer can map them to 429.
func (e *Engine) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	if err := e.ensureIndex(ctx); err != nil {
		return "", fmt.Errorf("building index: %w", err)
	}

	results, err := e.store.Search(ctx, question, knowledge.WithTopK(e.cfg.TopK))
	if err != nil {
		return "", fmt.Errorf("retrieving passages: %w", err)
	}

	resp, err := genkit.Generate(ctx, e.g,
		ai.WithModelName(e.cfg.ModelName),
		ai.WithSystem(systemPrompt),
		ai.WithPrompt("%s", userPrompt(formatContext(results), question)),
		ai.WithConfig(&genai.GenerateContentConfig{
			Temperature: genai.Ptr(e.cfg.Temperature),
		}),
	)
	if err != nil {
		if isQuotaError(err) {
			return "", fmt.Errorf("%w: %w", ErrQuotaExhausted, err)
		}
		return "", fmt.Errorf("generating answer: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

// Rebuild drops the persisted index and rebuilds it from the current source
// documents, regardless of fingerprint state.
func (e *Engine) Rebuild(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ready = false
	return e.build(ctx)
}

// ensureIndex builds the index exactly once, even under concurrent first
// questions. A persisted index whose fingerprint matches the current source
// documents is reused as-is.
func (e *Engine) ensureIndex(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ready {
		return nil
	}

	fp, err := e.loader.Fingerprint()
	if err != nil {
		return err
	}

	if stored := e.storedFingerprint(); stored == fp && e.store.Count() > 0 {
		e.logger.Debug("reusing persisted index", "passages", e.store.Count())
		e.ready = true
		return nil
	}

	if _, err := e.build(ctx); err != nil {
		return err
	}
	return nil
}

// build reindexes everything. Caller must hold e.mu.
func (e *Engine) build(ctx context.Context) (int, error) {
	doc, err := e.loader.Full()
	if err != nil {
		return 0, err
	}
	passages, err := resume.Passages(doc)
	if err != nil {
		return 0, err
	}

	faq, err := e.loader.FAQ()
	if err != nil {
		return 0, err
	}
	passages = append(passages, resume.FAQPassages(faq)...)

	if err := e.store.Reset(); err != nil {
		return 0, err
	}

	docs := make([]knowledge.Document, 0, len(passages))
	for _, p := range passages {
		docs = append(docs, knowledge.Document{
			ID:       p.ID,
			Content:  p.Content,
			Metadata: p.Metadata,
		})
	}
	if err := e.store.Add(ctx, docs...); err != nil {
		return 0, err
	}

	fp, err := e.loader.Fingerprint()
	if err != nil {
		return 0, err
	}
	if err := e.writeFingerprint(fp); err != nil {
		return 0, err
	}

	e.logger.Info("index built", "passages", len(docs))
	e.ready = true
	return len(docs), nil
}

// storedFingerprint reads the fingerprint of the persisted index.
// Returns "" when no index was built yet.
func (e *Engine) storedFingerprint() string {
	data, err := os.ReadFile(filepath.Join(e.cfg.IndexDir, fingerprintFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (e *Engine) writeFingerprint(fp string) error {
	path := filepath.Join(e.cfg.IndexDir, fingerprintFile)
	if err := os.WriteFile(path, []byte(fp+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing fingerprint: %w", err)
	}
	return nil
}
