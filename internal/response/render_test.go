// internal/response/render_test.go
package response

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echo3/internal/advisor"
	"echo3/internal/catalog"
	"echo3/internal/market"
	"echo3/internal/quest"
	"echo3/internal/session"
)

const catalogFixture = `{
  "dimensions": [
    {
      "id": "personalized",
      "title": "Personal Intelligence",
      "subtitle": "Individual trading pattern analysis",
      "description": "Portfolio-aware DeFi analysis.",
      "badge": "CORE",
      "truthLevel": "Personal Learning Engine",
      "dataSource": "Portfolio API",
      "features": ["history"]
    },
    {
      "id": "security",
      "title": "Security Intelligence",
      "subtitle": "Risk Shield",
      "description": "Exposure and approval risk.",
      "badge": "SHIELD",
      "truthLevel": "Security Neural Networks",
      "dataSource": "Audit Feeds",
      "features": ["approvals"]
    }
  ]
}`

func testSelection(t *testing.T, ids ...string) *catalog.Selection {
	t.Helper()
	cat, err := catalog.Parse([]byte(catalogFixture))
	require.NoError(t, err)
	sel, err := catalog.NewSelection(cat, ids...)
	require.NoError(t, err)
	return sel
}

func sampleSnapshot() *market.Snapshot {
	return &market.Snapshot{
		BTC:       102803.10,
		ETH:       2290.50,
		SOL:       135.93,
		Timestamp: time.Now(),
		Source:    market.SourceCoinGecko,
	}
}

func sampleRecommendation() advisor.Recommendation {
	return advisor.Recommendation{
		ID:                    "rec-1",
		Kind:                  "PROTOCOL_ANALYSIS",
		Project:               "Uniswap V4",
		Confidence:            0.9,
		Suggestion:            "Consider 1.5x exposure during initial deployment phase.",
		Reasoning:             "Hook architecture enables custom AMM logic",
		RiskLevel:             advisor.RiskMedium,
		ExpectedOutcome:       "+25-40% based on V3 adoption patterns",
		RequiresHumanApproval: true,
		TVL:                   "$4.2B",
		Ecosystem:             "Ethereum DeFi",
	}
}

func sampleQuestResult() *quest.Result {
	return &quest.Result{
		Quest: quest.Quest{
			ID:         7,
			Question:   "should i buy eth?",
			TruthLevel: 3,
			Timestamp:  time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		},
		TruthMessage: "Validator consensus aligns with your thesis.",
		TotalQuests:  9,
	}
}

func TestRenderAdvisory(t *testing.T) {
	sel := testSelection(t, "personalized", "security")
	doc := NewAdvisory(sel, sampleSnapshot(), sampleRecommendation(), sampleQuestResult(), true)

	out := Render(doc)
	assert.Contains(t, out, "DUAL-DIMENSIONAL SYNTHESIS")
	assert.Contains(t, out, "COMPLETE")
	assert.Contains(t, out, "Personal Intelligence Module: Active")
	assert.Contains(t, out, "Security Intelligence Module: Active")
	assert.Contains(t, out, "ETH Price: $2290.50")
	assert.Contains(t, out, "BTC Price: $102,803")
	assert.Contains(t, out, "Data Source: CoinGecko API")
	assert.Contains(t, out, "RECOMMENDATION: Consider 1.5x exposure")
	assert.Contains(t, out, "My Confidence: 90%")
	assert.Contains(t, out, "Risk Level: MEDIUM")
	assert.Contains(t, out, "Quest ID: #7")
	assert.Contains(t, out, "Truth Level: Profound Insight")
	assert.Contains(t, out, "On-chain Contract: ACTIVE")
	assert.Contains(t, out, "Portfolio API")
	assert.Contains(t, out, "enhanced analysis combines 2 intelligence dimensions")
}

func TestRenderAdvisoryDegradedSections(t *testing.T) {
	sel := testSelection(t, "personalized")
	doc := NewAdvisory(sel, nil, sampleRecommendation(), nil, false)

	out := Render(doc)
	assert.NotContains(t, out, "CURRENT MARKET CONTEXT")
	assert.NotContains(t, out, "ON-CHAIN VERIFICATION")
	assert.Contains(t, out, "Demo Mode: Simulated data")
	assert.Contains(t, out, "focused analysis combines 1 intelligence dimension with")
}

func TestRenderDescriptive(t *testing.T) {
	sel := testSelection(t, "personalized", "security")
	doc := NewDescriptive(sel, PerformanceMetrics{
		ActiveDimensions:   2,
		CatalogSize:        3,
		ETHPrice:           2290.50,
		CollaborationScore: 0.91,
		ProtocolsAnalyzed:  127,
	}, market.DemoTVLReport(), sampleQuestResult(), false)

	out := Render(doc)
	assert.Contains(t, out, "ACTIVATED")
	assert.Contains(t, out, "PERSONAL INTELLIGENCE ANALYSIS:\nPortfolio-aware DeFi analysis.")
	assert.Contains(t, out, "Analysis Dimensions: 2/3 active")
	assert.Contains(t, out, "Total Value Locked: $89.7B")
	assert.Contains(t, out, "Uniswap V3: $5.2B (Dexes)")
	assert.Contains(t, out, "AI Collaboration Score: 91%")
	assert.Contains(t, out, "Protocols Analyzed: 127")
	assert.Contains(t, out, "dual-dimension analysis is ready")
	assert.Contains(t, out, "Timestamp: 2026-09-01 12:00:00")
}

func TestWelcomeEmbedsTrustMetrics(t *testing.T) {
	trust := session.NewTrustState()

	out := Welcome(trust)
	assert.Contains(t, out, "ECHO3 COLLABORATIVE INTELLIGENCE INITIALIZED")
	assert.Contains(t, out, "Collaboration Score: 91%")
	assert.Contains(t, out, "Success Pattern Recognition: 89%")
	assert.Contains(t, out, "Analysis Confidence: 76%")
}

func TestGuideEmbedsSelection(t *testing.T) {
	sel := testSelection(t, "personalized")

	out := Guide(sel, 0.76)
	assert.Contains(t, out, "SINGLE-DIMENSIONAL ANALYSIS: PERSONAL INTELLIGENCE ACTIVATED")
	assert.Contains(t, out, "using 1 intelligence dimension:")
	assert.Contains(t, out, "- Personal Intelligence: Portfolio-aware DeFi analysis.")
	assert.Contains(t, out, "ANALYSIS CONFIDENCE: 76%")
	assert.Contains(t, out, "PROCESSING CAPABILITY: Focused Analysis")
}

func TestWithThousands(t *testing.T) {
	assert.Equal(t, "102,803", withThousands(102803.10))
	assert.Equal(t, "950", withThousands(950))
	assert.Equal(t, "1,000", withThousands(1000))
	assert.Equal(t, "12,345,678", withThousands(12345678))
}
