package sentiment

// Fixed word lists backing the rule-based scorer. Loaded once at package
// init and never mutated, so no synchronization is needed.

var positiveWords = wordSet(
	"amazing", "awesome", "excellent", "fantastic", "great", "love", "wonderful",
	"brilliant", "outstanding", "perfect", "incredible", "superb", "magnificent",
	"delightful", "impressive", "remarkable", "phenomenal", "spectacular",
	"good", "nice", "beautiful", "enjoyed", "liked", "recommend", "best",
)

var negativeWords = wordSet(
	"awful", "terrible", "horrible", "bad", "worst", "hate", "disappointing",
	"boring", "stupid", "waste", "failed", "poor", "pathetic", "ridiculous",
	"annoying", "frustrating", "useless", "painful", "disaster", "mess",
	"disgusting", "unbearable", "nightmare",
)

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
