// internal/advisor/advisor.go
package advisor

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type RiskLevel string

const (
	RiskLow        RiskLevel = "LOW"
	RiskMedium     RiskLevel = "MEDIUM"
	RiskMediumHigh RiskLevel = "MEDIUM-HIGH"
	RiskHigh       RiskLevel = "HIGH"
)

// Recommendation is one generated advisory. Only the most recent one is
// ever pending; the next query's recommendation supersedes it.
type Recommendation struct {
	ID                    string
	Kind                  string
	Project               string
	Confidence            float64
	Suggestion            string
	Reasoning             string
	RiskLevel             RiskLevel
	ExpectedOutcome       string
	RequiresHumanApproval bool
	TVL                   string
	Ecosystem             string
	CreatedAt             time.Time
}

type template struct {
	kind            string
	project         string
	baseConfidence  float64
	confidenceSpan  float64
	suggestion      func(r *rand.Rand) string
	reasoning       string
	riskLevel       RiskLevel
	expectedOutcome string
	tvl             string
	ecosystem       string
}

var templates = []template{
	{
		kind:           "PROTOCOL_ANALYSIS",
		project:        "Uniswap V4",
		baseConfidence: 0.85,
		confidenceSpan: 0.10,
		suggestion: func(r *rand.Rand) string {
			return fmt.Sprintf("Uniswap V4's hook system shows strong innovation potential. Based on your DeFi preferences, consider %.1fx exposure during initial deployment phase.", r.Float64()*2+1)
		},
		reasoning:       "Hook architecture enables custom AMM logic, creating new revenue streams",
		riskLevel:       RiskMedium,
		expectedOutcome: "+25-40% based on V3 adoption patterns",
		tvl:             "$4.2B",
		ecosystem:       "Ethereum DeFi",
	},
	{
		kind:           "YIELD_OPPORTUNITY",
		project:        "Pendle Finance",
		baseConfidence: 0.82,
		confidenceSpan: 0.12,
		suggestion: func(r *rand.Rand) string {
			return fmt.Sprintf("Pendle's yield tokenization shows growing adoption. Based on your yield farming history, consider %.1fx position in PT tokens.", r.Float64()*1.5+1)
		},
		reasoning:       "Yield trading market expansion with institutional interest",
		riskLevel:       RiskMediumHigh,
		expectedOutcome: "+30-50% based on yield curve optimization",
		tvl:             "$180M",
		ecosystem:       "Yield Trading",
	},
}

// Generator draws recommendations uniformly from the template pool.
// Generation cannot fail; an empty pool is a configuration bug.
type Generator struct {
	rand *rand.Rand
}

func NewGenerator(r *rand.Rand) *Generator {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rand: r}
}

func (g *Generator) Generate() Recommendation {
	t := templates[g.rand.Intn(len(templates))]

	confidence := t.baseConfidence + g.rand.Float64()*t.confidenceSpan
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < 0 {
		confidence = 0
	}

	return Recommendation{
		ID:                    uuid.NewString(),
		Kind:                  t.kind,
		Project:               t.project,
		Confidence:            confidence,
		Suggestion:            t.suggestion(g.rand),
		Reasoning:             t.reasoning,
		RiskLevel:             t.riskLevel,
		ExpectedOutcome:       t.expectedOutcome,
		RequiresHumanApproval: true,
		TVL:                   t.tvl,
		Ecosystem:             t.ecosystem,
		CreatedAt:             time.Now(),
	}
}
