package detail

import "strings"

// Level describes how elaborate an answer the user is asking for.
type Level string

const (
	Brief    Level = "brief"
	Detailed Level = "detailed"
)

// Decision is the outcome of analysing a question.
type Decision struct {
	Level   Level
	Matched []string
}

// keywords are matched as substrings of the lowercased question, so "show"
// also counts as "how".
var keywords = []string{"explain", "detail", "describe", "how", "why"}

// Analyze reports whether the question asks for a more detailed explanation.
func Analyze(question string) Decision {
	lowered := strings.ToLower(question)

	var matched []string
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			matched = append(matched, kw)
		}
	}

	if len(matched) == 0 {
		return Decision{Level: Brief}
	}
	return Decision{Level: Detailed, Matched: matched}
}

// NeedsDetail is shorthand for Analyze(question).Level == Detailed.
func NeedsDetail(question string) bool {
	return Analyze(question).Level == Detailed
}
