package resume

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassages_FullDocument(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(fullJSON), &doc))

	passages, err := Passages(&doc)
	require.NoError(t, err)

	byID := make(map[string]Passage, len(passages))
	for _, p := range passages {
		byID[p.ID] = p
	}

	profile, ok := byID["resume:profile"]
	require.True(t, ok, "profile passage missing")
	assert.Contains(t, profile.Content, "Joseph Beyer")
	assert.Equal(t, SectionProfile, profile.Metadata["section"])

	exp, ok := byID["resume:experience:0"]
	require.True(t, ok, "experience passage missing")
	assert.Contains(t, exp.Content, "Company: Acme Corp")
	assert.Contains(t, exp.Content, "Role: Senior Engineer")
	assert.Contains(t, exp.Content, "Tech: Go, Postgres")
	assert.Contains(t, exp.Content, "Project Billing: Invoice generation service.")
	assert.Equal(t, "Acme Corp", exp.Metadata["company"])

	tech, ok := byID["resume:technical:languages"]
	require.True(t, ok, "technical passage missing")
	assert.Contains(t, tech.Content, "Go Python SQL")

	training, ok := byID["resume:training"]
	require.True(t, ok, "training passage missing")
	assert.Contains(t, training.Content, "TensorFlow certification")

	// A string-valued summary field still becomes a passage.
	strengths, ok := byID["resume:summary:key_strengths"]
	require.True(t, ok)
	assert.Contains(t, strengths.Content, "Shipping reliable systems.")
}

func TestPassages_EmptyDocument(t *testing.T) {
	_, err := Passages(&Document{})
	assert.ErrorContains(t, err, "no resume passages")
}

func TestPassages_TitleFallsBackForRole(t *testing.T) {
	doc := &Document{
		Experience: []Experience{{Company: "Old Co", Title: "Developer", Date: "2001"}},
	}

	passages, err := Passages(doc)
	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Contains(t, passages[0].Content, "Role: Developer")
}

func TestFAQPassages(t *testing.T) {
	var faq FAQ
	require.NoError(t, json.Unmarshal([]byte(faqJSON), &faq))

	passages := FAQPassages(&faq)

	// Blank question and blank answer entries are dropped.
	require.Len(t, passages, 1)
	assert.Equal(t, "faq:0", passages[0].ID)
	assert.Equal(t, "Question: Are you open to relocation?\nAnswer: Yes, within the US.", passages[0].Content)
	assert.Equal(t, SectionFAQ, passages[0].Metadata["section"])
}

func TestFAQPassages_Nil(t *testing.T) {
	assert.Nil(t, FAQPassages(nil))
}
