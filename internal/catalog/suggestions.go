package catalog

// Per-dimension query suggestions shown when exactly one dimension is
// selected. Unknown single selections and multi-selections fall back to the
// combined list.
var singleSuggestions = map[string][]string{
	"personalized": {
		"What DeFi protocols match my risk tolerance?",
		"How should I rebalance my DeFi positions?",
		"Based on my portfolio, which yield farming opportunities suit me?",
	},
	"security": {
		"Analyze the security risks of my current DeFi exposures",
		"Check for dangerous token approvals in my wallets",
		"Review my wallet security and recommend improvements",
	},
	"macro": {
		"How are macro trends affecting DeFi protocol valuations?",
		"Which DeFi ecosystems are gaining institutional adoption?",
		"What regulatory developments could impact my holdings?",
	},
}

var comboSuggestions = []string{
	"Provide a comprehensive analysis combining all selected dimensions",
	"How do personal patterns align with current security risks?",
	"What's the optimal strategy considering my profile and macro trends?",
	"Give me a multi-dimensional risk-reward assessment",
}

// Suggestions returns example queries for the current selection.
func (s *Selection) Suggestions() []string {
	if len(s.ids) == 1 {
		if list, ok := singleSuggestions[s.ids[0]]; ok {
			out := make([]string, len(list))
			copy(out, list)
			return out
		}
	}
	out := make([]string, len(comboSuggestions))
	copy(out, comboSuggestions)
	return out
}
