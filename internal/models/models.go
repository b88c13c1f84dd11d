package models

import (
	"strings"

	"resume-screener/internal/keywords"
)

// UnknownName is the sentinel used when no name could be derived from a document.
const UnknownName = "Unknown"

// Candidate is the structured record derived from one resume document.
// Content is the canonical source of truth; every other field is best-effort
// and may be empty (or the UnknownName sentinel) without being an error.
type Candidate struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Skills          []string `json:"skills"`
	Experience      string   `json:"experience,omitempty"`
	Content         string   `json:"content"`
	MatchPercentage int      `json:"match_percentage"`
	Rank            int      `json:"rank,omitempty"`
}

// SkillsDisplay renders the skill set as a comma-joined string in
// vocabulary order.
func (c Candidate) SkillsDisplay() string {
	return strings.Join(c.Skills, ", ")
}

// SearchText joins the candidate's displayed fields with spaces, lower-cased,
// for boolean query matching.
func (c Candidate) SearchText() string {
	parts := []string{c.Name, c.Email, c.Phone, c.SkillsDisplay(), c.Experience, c.Content}
	return strings.ToLower(strings.Join(parts, " "))
}

// JobDescription pairs the raw hiring requirement text with its derived
// keyword set. A change of text always produces a fresh value via
// NewJobDescription; instances are never mutated in place.
type JobDescription struct {
	Text     string       `json:"text"`
	Keywords keywords.Set `json:"-"`
}

// NewJobDescription derives the keyword set for the given text.
func NewJobDescription(text string) JobDescription {
	return JobDescription{
		Text:     text,
		Keywords: keywords.Build(text),
	}
}

// Active reports whether a job description is in effect. Blank text signals
// "no JD active" and uniformly scores every candidate at zero.
func (jd JobDescription) Active() bool {
	return strings.TrimSpace(jd.Text) != ""
}

// ScreeningReport is the ranked view of all candidates against the active
// job description.
type ScreeningReport struct {
	Candidates     []Candidate `json:"candidates"`
	JobDescription string      `json:"job_description"`
	GeneratedAt    string      `json:"generated_at"`
}
