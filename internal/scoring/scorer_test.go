package scoring

import (
	"testing"

	"resume-screener/internal/keywords"
	"resume-screener/internal/models"
)

// TestScore_EmptyKeywordSet tests the empty-set guard
func TestScore_EmptyKeywordSet(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "Non-empty text",
			text: "python aws sql",
		},
		{
			name: "Empty text",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.text, keywords.Set{}); got != 0 {
				t.Errorf("Score(%q, {}) = %d, want 0", tt.text, got)
			}
		})
	}
}

// TestScore_Percentages tests floored percentage computation
func TestScore_Percentages(t *testing.T) {
	tests := []struct {
		name string
		text string
		jd   string
		want int
	}{
		{
			name: "All keywords present",
			text: "python aws sql",
			jd:   "python aws sql",
			want: 100,
		},
		{
			name: "Half present",
			text: "python developer",
			jd:   "python java",
			want: 50,
		},
		{
			name: "One of three, floored",
			text: "only python here",
			jd:   "python rust haskell",
			want: 33,
		},
		{
			name: "None present",
			text: "completely unrelated text",
			jd:   "kubernetes terraform",
			want: 0,
		},
		{
			name: "Case-insensitive containment",
			text: "Expert in PYTHON and Aws",
			jd:   "python aws",
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kw := keywords.Build(tt.jd)
			if got := Score(tt.text, kw); got != tt.want {
				t.Errorf("Score(%q, keywords(%q)) = %d, want %d", tt.text, tt.jd, got, tt.want)
			}
		})
	}
}

// TestScore_SubstringContainment documents that keywords match anywhere in
// the text, including inside unrelated words, mirroring skill extraction
func TestScore_SubstringContainment(t *testing.T) {
	kw := keywords.Build("data experience")

	// "data" is satisfied by the substring inside "database".
	if got := Score("maintained the company database for 5 years of experience", kw); got != 100 {
		t.Errorf("Score() = %d, want 100 via substring matches", got)
	}
}

// TestScore_Bounded tests that scores stay within [0, 100]
func TestScore_Bounded(t *testing.T) {
	texts := []string{"", "python", "python python python aws sql java ruby"}
	sets := []keywords.Set{{}, keywords.Build("python"), keywords.Build("python aws sql java ruby rust")}

	for _, text := range texts {
		for _, kw := range sets {
			got := Score(text, kw)
			if got < 0 || got > 100 {
				t.Errorf("Score(%q, %v) = %d, out of [0,100]", text, kw.Sorted(), got)
			}
		}
	}
}

// TestScore_Monotonic tests that adding a keyword present in the text never
// decreases the score
func TestScore_Monotonic(t *testing.T) {
	text := "python aws sql developer"

	base := keywords.Build("python rust")
	before := Score(text, base)

	grown := keywords.Build("python rust aws")
	after := Score(text, grown)

	if after < before {
		t.Errorf("adding a present keyword decreased score: %d -> %d", before, after)
	}
}

// TestScore_EndToEnd reproduces the reference scenario: a JD scored against
// a candidate text sharing exactly two qualifying keywords
func TestScore_EndToEnd(t *testing.T) {
	kw := keywords.Build("Looking for a Python developer with AWS and SQL experience")

	// Qualifying keywords: looking, python, developer, aws, sql, experience.
	if kw.Len() != 6 {
		t.Fatalf("keyword count = %d (%v), want 6", kw.Len(), kw.Sorted())
	}

	got := Score("worked with python sql azure", kw)
	want := 2 * 100 / 6 // python, sql
	if got != want {
		t.Errorf("Score() = %d, want %d", got, want)
	}
}

// TestRank tests ordering, rank assignment and non-mutation
func TestRank(t *testing.T) {
	candidates := []models.Candidate{
		{ID: "a", Content: "java only"},
		{ID: "b", Content: "python aws sql"},
		{ID: "c", Content: "python but nothing else"},
	}
	kw := keywords.Build("python aws sql")

	ranked := Rank(candidates, kw)

	if ranked[0].ID != "b" || ranked[0].Rank != 1 || ranked[0].MatchPercentage != 100 {
		t.Errorf("top candidate = %+v, want b at rank 1 with 100%%", ranked[0])
	}
	if ranked[1].ID != "c" || ranked[2].ID != "a" {
		t.Errorf("order = %s, %s; want c, a", ranked[1].ID, ranked[2].ID)
	}
	for _, c := range candidates {
		if c.MatchPercentage != 0 || c.Rank != 0 {
			t.Error("Rank() must not mutate its input")
		}
	}
}

// TestRank_StableForTies tests that equally scored candidates keep input order
func TestRank_StableForTies(t *testing.T) {
	candidates := []models.Candidate{
		{ID: "first", Content: "python"},
		{ID: "second", Content: "python"},
	}

	ranked := Rank(candidates, keywords.Build("python"))

	if ranked[0].ID != "first" || ranked[1].ID != "second" {
		t.Errorf("tie order = %s, %s; want input order preserved", ranked[0].ID, ranked[1].ID)
	}
}
