// Package testutil provides deterministic Genkit test doubles: a mock
// embedder with stable hash-derived vectors and a pattern-matching mock
// model. Neither needs an API key, so every test runs offline.
package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/JoeBee/resumesite/internal/log"
)

// Model and embedder names registered with Genkit.
const (
	ModelName    = "mock/resume-model"
	EmbedderName = "mock/resume-embedder"
)

// EmbeddingDim is the dimensionality of mock embedding vectors.
const EmbeddingDim = 8

// Env bundles the shared test environment. Genkit registries are global and
// reject duplicate definitions, so the environment is created once per
// process and shared; Setup isolates tests by clearing mock state instead.
type Env struct {
	Genkit       *genkit.Genkit
	Embedder     ai.Embedder
	EmbedderMock *MockEmbedder
	LLM          *MockLLM
	Logger       log.Logger
}

var (
	envOnce sync.Once
	env     *Env
)

// Setup returns the shared test environment with fresh mock state.
func Setup(t *testing.T) *Env {
	t.Helper()

	envOnce.Do(func() {
		g := genkit.Init(context.Background())

		llm := NewMockLLM("I don't know.")
		mockEmbedder := NewMockEmbedder(EmbeddingDim)

		env = &Env{
			Genkit:       g,
			Embedder:     mockEmbedder.Register(g),
			EmbedderMock: mockEmbedder,
			LLM:          llm,
			Logger:       log.NewNop(),
		}
		llm.Register(g)
	})

	env.LLM.Reset()
	env.EmbedderMock.Reset()
	return env
}
