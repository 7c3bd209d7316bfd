// Package resume provides the resume data model and its flattening into
// retrieval passages.
//
// Two JSON documents drive the site: an abbreviated resume rendered on the
// page, and a full resume that feeds the retrieval index. An optional FAQ
// document contributes curated question/answer passages.
package resume

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// StringList accepts either a JSON string or an array of strings.
// The source documents use both forms interchangeably.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("string or string array expected: %w", err)
	}
	*s = StringList{single}
	return nil
}

// Profile holds contact information.
type Profile struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
}

// Summary holds the narrative summary sections.
type Summary struct {
	TechnicalSkillsExperience StringList `json:"technical_skills_experience"`
	KeyStrengths              StringList `json:"key_strengths"`
	Hobbies                   StringList `json:"hobbies"`
	NextGreatChallenge        string     `json:"next_great_challenge"`
}

// Education is a single degree or program.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Date   string `json:"date"`
	GPA    string `json:"gpa"`
	Notes  string `json:"notes"`
}

// Project is a named project within a job.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Experience is a single professional engagement.
type Experience struct {
	Company  string    `json:"company"`
	Role     string    `json:"role"`
	Title    string    `json:"title"` // older entries use "title" instead of "role"
	Date     string    `json:"date"`
	Tech     []string  `json:"tech"`
	Tasks    []string  `json:"tasks"`
	Projects []Project `json:"projects"`
}

// Document is the full resume used as the retrieval corpus.
type Document struct {
	Profile            Profile               `json:"profile"`
	Summary            Summary               `json:"summary"`
	TechnicalSummary   map[string]StringList `json:"technical_summary"`
	Education          []Education           `json:"education"`
	Experience         []Experience          `json:"professional_experience"`
	AdditionalTraining []string              `json:"additional_training_education"`
}

// QA is a single curated question/answer pair.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQ is the optional curated Q&A document.
type FAQ struct {
	QA []QA `json:"qa"`
}

// Loader reads the resume documents from a data directory.
type Loader struct {
	dataDir    string
	abbrevFile string
	fullFile   string
	faqFile    string
}

// NewLoader creates a Loader for the given data directory and file names.
func NewLoader(dataDir, abbrevFile, fullFile, faqFile string) *Loader {
	return &Loader{
		dataDir:    dataDir,
		abbrevFile: abbrevFile,
		fullFile:   fullFile,
		faqFile:    faqFile,
	}
}

// Abbrev returns the raw abbreviated resume JSON for the page. The document
// is validated as JSON but otherwise passed through untouched.
func (l *Loader) Abbrev() (json.RawMessage, error) {
	data, err := os.ReadFile(filepath.Join(l.dataDir, l.abbrevFile))
	if err != nil {
		return nil, fmt.Errorf("reading abbreviated resume: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("abbreviated resume %s is not valid JSON", l.abbrevFile)
	}
	return data, nil
}

// Full loads and decodes the full resume document.
func (l *Loader) Full() (*Document, error) {
	data, err := os.ReadFile(filepath.Join(l.dataDir, l.fullFile))
	if err != nil {
		return nil, fmt.Errorf("reading full resume: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding full resume: %w", err)
	}
	return &doc, nil
}

// FAQ loads the optional FAQ document. A missing file returns (nil, nil);
// the FAQ only enriches the index when present.
func (l *Loader) FAQ() (*FAQ, error) {
	data, err := os.ReadFile(filepath.Join(l.dataDir, l.faqFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading FAQ: %w", err)
	}
	var faq FAQ
	if err := json.Unmarshal(data, &faq); err != nil {
		return nil, fmt.Errorf("decoding FAQ: %w", err)
	}
	return &faq, nil
}

// Fingerprint returns a stable hash over the retrieval source documents
// (full resume + FAQ). The index directory stores this value so a changed
// document triggers a rebuild on the next question.
func (l *Loader) Fingerprint() (string, error) {
	h := sha256.New()

	full, err := os.ReadFile(filepath.Join(l.dataDir, l.fullFile))
	if err != nil {
		return "", fmt.Errorf("reading full resume: %w", err)
	}
	h.Write(full)

	faq, err := os.ReadFile(filepath.Join(l.dataDir, l.faqFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading FAQ: %w", err)
	}
	h.Write(faq)

	return hex.EncodeToString(h.Sum(nil)), nil
}
