// Package extract derives structured candidate attributes from raw resume
// text using pattern rules. Extraction is total: a pattern miss yields an
// empty field, never an error.
package extract

import (
	"regexp"
	"strings"

	"resume-screener/internal/models"
	"resume-screener/internal/textutil"
)

const (
	// MaxNameLength bounds the name heuristic (first non-blank line).
	MaxNameLength = 60
	// minPhoneDigits and maxPhoneDigits bound plausible phone numbers.
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	// experiencePattern captures the first "<N> years" or "<N>+ yrs" mention.
	experiencePattern = regexp.MustCompile(`(?i)\d+\+?\s*(?:years|yrs)`)
	digitPattern      = regexp.MustCompile(`\d`)
)

// DefaultVocabulary is the controlled skill vocabulary used when no custom
// vocabulary is configured. Membership is tested by case-insensitive
// substring containment, so short entries can match inside unrelated words
// ("data" inside "database"); that imprecision is part of the contract.
var DefaultVocabulary = []string{
	"python", "java", "javascript", "typescript", "golang", "c++", "c#",
	"ruby", "php", "swift", "kotlin", "scala", "rust",
	"sql", "mysql", "postgresql", "mongodb", "redis",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins",
	"react", "angular", "vue", "node", "django", "flask", "spring",
	"html", "css", "git", "linux",
	"machine learning", "deep learning", "data analysis", "nlp",
	"excel", "tableau", "power bi",
	"agile", "scrum", "communication", "leadership",
}

// Config controls extraction behavior.
type Config struct {
	// Vocabulary is the controlled skill vocabulary, in display order.
	// Empty means DefaultVocabulary.
	Vocabulary []string
	// TokenBoundary switches skill matching to whole-token mode. The default
	// (false) is substring containment, kept for parity with relevance
	// scoring and its fixtures.
	TokenBoundary bool
}

// Extractor derives candidate attributes from normalized resume text.
type Extractor struct {
	vocabulary    []string
	tokenBoundary bool
}

// New creates an extractor with the given configuration.
func New(cfg Config) *Extractor {
	vocab := cfg.Vocabulary
	if len(vocab) == 0 {
		vocab = DefaultVocabulary
	}
	return &Extractor{
		vocabulary:    vocab,
		tokenBoundary: cfg.TokenBoundary,
	}
}

// Extract parses raw document text into a candidate record. The ID is left
// blank; identity is assigned at ingestion, not here. Empty input yields an
// all-default record with the UnknownName sentinel.
func (e *Extractor) Extract(rawText string) models.Candidate {
	return models.Candidate{
		Name:       e.extractName(rawText),
		Email:      emailPattern.FindString(rawText),
		Phone:      e.extractPhone(rawText),
		Skills:     e.extractSkills(rawText),
		Experience: experiencePattern.FindString(rawText),
		Content:    rawText,
	}
}

// extractName takes the first non-blank line, truncated to MaxNameLength.
// Resume headers vary wildly, so this is documented best-effort only.
func (e *Extractor) extractName(text string) string {
	line := textutil.FirstNonBlankLine(text)
	if line == "" {
		return models.UnknownName
	}
	return textutil.TruncateRunes(line, MaxNameLength)
}

// extractPhone returns the first pattern match whose digit count is within
// plausible phone-number bounds.
func (e *Extractor) extractPhone(text string) string {
	for _, match := range phonePattern.FindAllString(text, -1) {
		digits := len(digitPattern.FindAllString(match, -1))
		if digits >= minPhoneDigits && digits <= maxPhoneDigits {
			return match
		}
	}
	return ""
}

// extractSkills tests each vocabulary entry for presence in the text and
// returns matches in vocabulary order, which doubles as display order.
func (e *Extractor) extractSkills(text string) []string {
	lower := textutil.Normalize(text)

	var tokens map[string]bool
	if e.tokenBoundary {
		tokens = make(map[string]bool)
		for _, tok := range textutil.Tokenize(text) {
			tokens[tok] = true
		}
	}

	var skills []string
	for _, skill := range e.vocabulary {
		if e.matchSkill(lower, tokens, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// matchSkill checks one vocabulary entry. In token-boundary mode single-word
// skills must appear as whole tokens; multi-word entries and entries with
// symbols (c++, c#) still fall back to substring containment.
func (e *Extractor) matchSkill(lower string, tokens map[string]bool, skill string) bool {
	if e.tokenBoundary && tokens != nil {
		if toks := textutil.Tokenize(skill); len(toks) == 1 && toks[0] == skill {
			return tokens[skill]
		}
	}
	return strings.Contains(lower, skill)
}
