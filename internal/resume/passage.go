package resume

import (
	"fmt"
	"strings"
)

// Section metadata values attached to passages.
const (
	SectionProfile    = "profile"
	SectionSummary    = "summary"
	SectionTechnical  = "technical"
	SectionEducation  = "education"
	SectionExperience = "experience"
	SectionTraining   = "training"
	SectionFAQ        = "faq"
)

// Passage is a single retrieval unit: one flattened slice of the resume or
// one FAQ pair, with metadata for filtering and display.
type Passage struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// Passages flattens the full resume into retrieval passages, one per
// section or job. Returns an error if the document yields no passages at
// all, which would leave the index empty.
func Passages(doc *Document) ([]Passage, error) {
	var passages []Passage

	add := func(id, section, content string, extra map[string]string) {
		meta := map[string]string{"section": section}
		for k, v := range extra {
			meta[k] = v
		}
		passages = append(passages, Passage{ID: id, Content: content, Metadata: meta})
	}

	if p := doc.Profile; p != (Profile{}) {
		add("resume:profile", SectionProfile,
			fmt.Sprintf("Profile: %s. Address: %s. Email: %s. Phone: %s. LinkedIn: %s.",
				p.Name, p.Address, p.Email, p.Phone, p.LinkedIn), nil)
	}

	summaryParts := []struct {
		label string
		items StringList
	}{
		{"technical_skills_experience", doc.Summary.TechnicalSkillsExperience},
		{"key_strengths", doc.Summary.KeyStrengths},
		{"hobbies", doc.Summary.Hobbies},
	}
	for _, part := range summaryParts {
		if len(part.items) == 0 {
			continue
		}
		add("resume:summary:"+part.label, SectionSummary,
			fmt.Sprintf("Summary %s: %s", part.label, strings.Join(part.items, " ")), nil)
	}
	if doc.Summary.NextGreatChallenge != "" {
		add("resume:summary:next_great_challenge", SectionSummary,
			"Next great challenge: "+doc.Summary.NextGreatChallenge, nil)
	}

	for category, items := range doc.TechnicalSummary {
		if len(items) == 0 {
			continue
		}
		add("resume:technical:"+category, SectionTechnical,
			fmt.Sprintf("Technical %s: %s", category, strings.Join(items, " ")), nil)
	}

	for i, ed := range doc.Education {
		detail := ed.GPA
		if detail == "" {
			detail = ed.Notes
		}
		add(fmt.Sprintf("resume:education:%d", i), SectionEducation,
			fmt.Sprintf("Education: %s at %s, %s. %s.", ed.Degree, ed.School, ed.Date, detail), nil)
	}

	for i, job := range doc.Experience {
		role := job.Role
		if role == "" {
			role = job.Title
		}
		parts := []string{fmt.Sprintf("Company: %s. Role: %s. Date: %s.", job.Company, role, job.Date)}
		if len(job.Tech) > 0 {
			parts = append(parts, "Tech: "+strings.Join(job.Tech, ", "))
		}
		if len(job.Tasks) > 0 {
			parts = append(parts, "Tasks: "+strings.Join(job.Tasks, " "))
		}
		for _, proj := range job.Projects {
			parts = append(parts, fmt.Sprintf("Project %s: %s", proj.Name, proj.Description))
		}
		add(fmt.Sprintf("resume:experience:%d", i), SectionExperience,
			strings.Join(parts, " "), map[string]string{"company": job.Company})
	}

	if len(doc.AdditionalTraining) > 0 {
		add("resume:training", SectionTraining,
			"Additional training: "+strings.Join(doc.AdditionalTraining, "; "), nil)
	}

	if len(passages) == 0 {
		return nil, fmt.Errorf("no resume passages loaded")
	}
	return passages, nil
}

// FAQPassages converts the FAQ document into "Question/Answer" passages.
// Pairs with a blank question or answer are skipped. A nil FAQ yields nil.
func FAQPassages(faq *FAQ) []Passage {
	if faq == nil {
		return nil
	}
	var passages []Passage
	for i, qa := range faq.QA {
		q := strings.TrimSpace(qa.Question)
		a := strings.TrimSpace(qa.Answer)
		if q == "" || a == "" {
			continue
		}
		passages = append(passages, Passage{
			ID:       fmt.Sprintf("faq:%d", i),
			Content:  fmt.Sprintf("Question: %s\nAnswer: %s", q, a),
			Metadata: map[string]string{"section": SectionFAQ},
		})
	}
	return passages
}
