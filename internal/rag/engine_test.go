package rag

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeBee/resumesite/internal/knowledge"
	"github.com/JoeBee/resumesite/internal/resume"
	"github.com/JoeBee/resumesite/internal/testutil"
)

const testFullJSON = `{
  "profile": {"name": "Joseph Beyer", "email": "joe@example.com"},
  "summary": {"hobbies": ["Cooking", "Trail running"]},
  "technical_summary": {"languages": ["Go", "Python"]},
  "professional_experience": [{
    "company": "Acme Corp",
    "role": "Senior Engineer",
    "date": "2015-2020",
    "tasks": ["Built the billing pipeline."]
  }]
}`

const testFAQJSON = `{"qa": [{"question": "Open to relocation?", "answer": "Yes."}]}`

type engineFixture struct {
	engine  *Engine
	store   *knowledge.Store
	env     *testutil.Env
	dataDir string
}

func newFixture(t *testing.T) *engineFixture {
	t.Helper()
	env := testutil.Setup(t)

	dataDir := t.TempDir()
	indexDir := filepath.Join(t.TempDir(), "index")
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "resume-full.json"), []byte(testFullJSON), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "rag-faq.json"), []byte(testFAQJSON), 0o600))

	loader := resume.NewLoader(dataDir, "resume-abbrev.json", "resume-full.json", "rag-faq.json")
	store, err := knowledge.Open(indexDir, knowledge.NewEmbeddingFunc(env.Embedder), env.Logger)
	require.NoError(t, err)

	engine := New(env.Genkit, store, loader, Config{
		ModelName:   testutil.ModelName,
		Temperature: 0.2,
		TopK:        4,
		IndexDir:    indexDir,
	}, env.Logger)

	return &engineFixture{engine: engine, store: store, env: env, dataDir: dataDir}
}

func TestEngine_AnswerEmptyQuestion(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Answer(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestEngine_AnswerBuildsIndexAndRetrieves(t *testing.T) {
	f := newFixture(t)
	f.env.LLM.AddResponse("billing", "He built the billing pipeline at Acme Corp.")

	answer, err := f.engine.Answer(context.Background(), "Tell me about the billing pipeline")
	require.NoError(t, err)
	assert.Equal(t, "He built the billing pipeline at Acme Corp.", answer)

	// Index was built: 4 resume passages + 1 FAQ passage.
	assert.Equal(t, 5, f.store.Count())

	// The model saw retrieved context, not just the raw question.
	calls := f.env.LLM.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].UserMessage, "Context from resume and FAQ:")
	assert.Contains(t, calls[0].UserMessage, "Question: Tell me about the billing pipeline")
	assert.Contains(t, calls[0].System, "Joseph Beyer")
}

func TestEngine_IndexBuiltOnce(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Answer(context.Background(), "first question")
	require.NoError(t, err)
	afterFirst := f.env.EmbedderMock.Calls()

	_, err = f.engine.Answer(context.Background(), "second question")
	require.NoError(t, err)

	// The second question embeds only its query. A silent rebuild would
	// re-embed all five passages on top of that.
	assert.Equal(t, afterFirst+1, f.env.EmbedderMock.Calls())
	assert.Equal(t, 5, f.store.Count())
	assert.Len(t, f.env.LLM.Calls(), 2)
}

func TestEngine_RebuildsWhenSourceChanges(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Answer(context.Background(), "warm up")
	require.NoError(t, err)
	require.Equal(t, 5, f.store.Count())

	// Add a FAQ entry; the fingerprint changes and the next question on a
	// fresh engine rebuilds the persisted index.
	bigger := `{"qa": [
	  {"question": "Open to relocation?", "answer": "Yes."},
	  {"question": "Remote work?", "answer": "Preferred."}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(f.dataDir, "rag-faq.json"), []byte(bigger), 0o600))

	loader := resume.NewLoader(f.dataDir, "resume-abbrev.json", "resume-full.json", "rag-faq.json")
	fresh := New(f.env.Genkit, f.store, loader, f.engine.cfg, f.env.Logger)

	_, err = fresh.Answer(context.Background(), "remote work?")
	require.NoError(t, err)
	assert.Equal(t, 6, f.store.Count())
}

func TestEngine_ReusesPersistedIndex(t *testing.T) {
	f := newFixture(t)

	n, err := f.engine.Rebuild(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, n)

	// A fresh engine over the same index dir must not reindex: the
	// fingerprint matches, so Answer works without touching the corpus.
	loader := resume.NewLoader(f.dataDir, "resume-abbrev.json", "resume-full.json", "rag-faq.json")
	fresh := New(f.env.Genkit, f.store, loader, f.engine.cfg, f.env.Logger)

	_, err = fresh.Answer(context.Background(), "anything at all")
	require.NoError(t, err)
	assert.Equal(t, 5, f.store.Count())
}

func TestEngine_QuotaErrorMapping(t *testing.T) {
	f := newFixture(t)
	f.env.LLM.FailWith(errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED"))

	_, err := f.engine.Answer(context.Background(), "any question")
	assert.ErrorIs(t, err, ErrQuotaExhausted)
}

func TestEngine_GenericUpstreamError(t *testing.T) {
	f := newFixture(t)
	f.env.LLM.FailWith(errors.New("internal failure"))

	_, err := f.engine.Answer(context.Background(), "any question")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrQuotaExhausted)
}

func TestEngine_MissingResumeFile(t *testing.T) {
	env := testutil.Setup(t)
	indexDir := t.TempDir()
	loader := resume.NewLoader(t.TempDir(), "a.json", "missing.json", "f.json")
	store, err := knowledge.Open(indexDir, knowledge.NewEmbeddingFunc(env.Embedder), env.Logger)
	require.NoError(t, err)

	engine := New(env.Genkit, store, loader, Config{
		ModelName: testutil.ModelName, TopK: 4, IndexDir: indexDir,
	}, env.Logger)

	_, err = engine.Answer(context.Background(), "question")
	assert.ErrorContains(t, err, "building index")
}

func TestIsQuotaError(t *testing.T) {
	assert.False(t, isQuotaError(nil))
	assert.True(t, isQuotaError(errors.New("HTTP 429 from upstream")))
	assert.True(t, isQuotaError(errors.New("rpc error: RESOURCE_EXHAUSTED")))
	assert.True(t, isQuotaError(errors.New("Quota exceeded for requests")))
	assert.False(t, isQuotaError(errors.New("connection refused")))
}
