package resume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullJSON = `{
  "profile": {"name": "Joseph Beyer", "email": "joe@example.com"},
  "summary": {
    "technical_skills_experience": ["20 years of software development."],
    "key_strengths": "Shipping reliable systems.",
    "next_great_challenge": "Production ML systems."
  },
  "technical_summary": {"languages": ["Go", "Python", "SQL"]},
  "education": [{"degree": "BS Computer Science", "school": "State University", "date": "1999", "gpa": "3.8"}],
  "professional_experience": [{
    "company": "Acme Corp",
    "role": "Senior Engineer",
    "date": "2015-2020",
    "tech": ["Go", "Postgres"],
    "tasks": ["Built the billing pipeline."],
    "projects": [{"name": "Billing", "description": "Invoice generation service."}]
  }],
  "additional_training_education": ["TensorFlow certification"]
}`

const faqJSON = `{
  "qa": [
    {"question": "Are you open to relocation?", "answer": "Yes, within the US."},
    {"question": "  ", "answer": "orphaned answer"},
    {"question": "Do you have a degree?", "answer": ""}
  ]
}`

func writeDataDir(t *testing.T) *Loader {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume-full.json"), []byte(fullJSON), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume-abbrev.json"), []byte(`{"name":"Joseph Beyer"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rag-faq.json"), []byte(faqJSON), 0o600))
	return NewLoader(dir, "resume-abbrev.json", "resume-full.json", "rag-faq.json")
}

func TestLoader_Full(t *testing.T) {
	l := writeDataDir(t)

	doc, err := l.Full()
	require.NoError(t, err)

	assert.Equal(t, "Joseph Beyer", doc.Profile.Name)
	assert.Equal(t, StringList{"Shipping reliable systems."}, doc.Summary.KeyStrengths)
	assert.Len(t, doc.Experience, 1)
	assert.Equal(t, "Acme Corp", doc.Experience[0].Company)
}

func TestLoader_Abbrev(t *testing.T) {
	l := writeDataDir(t)

	raw, err := l.Abbrev()
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Joseph Beyer"}`, string(raw))
}

func TestLoader_AbbrevMissing(t *testing.T) {
	l := NewLoader(t.TempDir(), "resume-abbrev.json", "resume-full.json", "rag-faq.json")

	_, err := l.Abbrev()
	assert.Error(t, err)
}

func TestLoader_FAQMissingIsNotError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume-full.json"), []byte(fullJSON), 0o600))
	l := NewLoader(dir, "resume-abbrev.json", "resume-full.json", "rag-faq.json")

	faq, err := l.FAQ()
	require.NoError(t, err)
	assert.Nil(t, faq)
}

func TestLoader_Fingerprint(t *testing.T) {
	l := writeDataDir(t)

	fp1, err := l.Fingerprint()
	require.NoError(t, err)
	fp2, err := l.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2, "fingerprint must be stable")

	// Changing a source document must change the fingerprint.
	require.NoError(t, os.WriteFile(filepath.Join(l.dataDir, "rag-faq.json"), []byte(`{"qa":[]}`), 0o600))
	fp3, err := l.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3)
}

func TestStringList_AcceptsStringOrArray(t *testing.T) {
	var s StringList
	require.NoError(t, s.UnmarshalJSON([]byte(`"single"`)))
	assert.Equal(t, StringList{"single"}, s)

	require.NoError(t, s.UnmarshalJSON([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, s)

	assert.Error(t, s.UnmarshalJSON([]byte(`42`)))
}
