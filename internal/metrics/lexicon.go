package metrics

// Fixed vocabularies used by the deterministic metrics. These are immutable
// configuration, safe for concurrent read-only use across requests.

// fillerWords is the filler lexicon. Multi-word phrases are matched as whole
// phrases at word boundaries.
var fillerWords = []string{
	"um",
	"uh",
	"like",
	"you know",
	"so",
	"actually",
	"basically",
	"right",
	"i mean",
	"well",
	"kinda",
	"sort of",
	"okay",
	"hmm",
	"ah",
}

// Salutation tiers, checked in order. First match wins.
var (
	salutationExcellent = []string{
		"excited to introduce",
		"feeling great",
		"pleasure to introduce",
	}
	salutationGood = []string{
		"good morning",
		"good afternoon",
		"good evening",
		"good day",
		"hello everyone",
	}
	salutationNormal = []string{"hi", "hello", "hey"}
)

// Keyword vocabularies for the keyword-presence metric.
var (
	mustHaveKeywords   = []string{"name", "age", "school", "class", "family", "hobbies", "interest"}
	goodToHaveKeywords = []string{
		"about family",
		"from",
		"parents",
		"ambition",
		"goal",
		"dream",
		"fun fact",
		"unique",
		"strengths",
	}
)

// Flow heuristic keyword sets.
var (
	flowOpeningKeywords = []string{"hello", "hi", "good morning"}
	flowSelfRefKeywords = []string{"name", "myself"}
	flowClosingKeywords = []string{"thank", "thanks", "bye", "goodbye"}
)
