// internal/response/render.go
package response

import (
	"fmt"
	"strings"

	"echo3/internal/catalog"
	"echo3/internal/ledger"
	"echo3/internal/session"
)

// Render turns a document into display text. All user-facing wording
// lives here so composition stays structural.
func Render(doc *Document) string {
	var b strings.Builder

	switch doc.Branch {
	case BranchAdvisory:
		renderAdvisory(&b, doc)
	default:
		renderDescriptive(&b, doc)
	}

	return b.String()
}

func renderAdvisory(b *strings.Builder, doc *Document) {
	fmt.Fprintf(b, "%s COMPLETE\n\n", strings.ToUpper(doc.AnalysisType))

	b.WriteString("MULTI-DIMENSIONAL ANALYSIS RESULTS:\n")
	for _, m := range doc.Modules {
		fmt.Fprintf(b, "%s Module: Active\n", m.Title)
	}

	if doc.Market != nil {
		b.WriteString("\nCURRENT MARKET CONTEXT:\n")
		fmt.Fprintf(b, "- ETH Price: $%.2f\n", doc.Market.ETH)
		fmt.Fprintf(b, "- BTC Price: $%s\n", withThousands(doc.Market.BTC))
		fmt.Fprintf(b, "- Data Source: %s\n", doc.Market.Source)
	}

	rec := doc.Advisory
	fmt.Fprintf(b, "\nRECOMMENDATION: %s\n\n", rec.Suggestion)
	b.WriteString("WHY THIS MATTERS FOR YOU:\n")
	fmt.Fprintf(b, "- Project: %s (%s)\n", rec.Project, rec.Ecosystem)
	fmt.Fprintf(b, "- TVL: %s - Strong liquidity foundation\n", rec.TVL)
	fmt.Fprintf(b, "- My Confidence: %.0f%% (Multi-dimensional analysis)\n", rec.Confidence*100)
	fmt.Fprintf(b, "- Risk Level: %s\n", rec.RiskLevel)
	fmt.Fprintf(b, "\nSTRATEGIC REASONING: %s\n", rec.Reasoning)
	fmt.Fprintf(b, "\nEXPECTED OUTCOME: %s\n", rec.ExpectedOutcome)

	if doc.OnChain != nil {
		r := doc.OnChain.Result
		b.WriteString("\nON-CHAIN VERIFICATION:\n")
		fmt.Fprintf(b, "- Quest ID: #%d\n", r.Quest.ID)
		fmt.Fprintf(b, "- Truth Level: %s\n", r.Quest.TruthLabel())
		fmt.Fprintf(b, "- AI Insight: %q\n", r.TruthMessage)
		b.WriteString("- Block Verified: confirmed\n")
	}

	b.WriteString("\nDATA SOURCES USED IN THIS ANALYSIS:\n")
	b.WriteString(strings.Join(doc.Provenance.DataSources, "\n"))
	b.WriteString("\n")
	if doc.Provenance.ContractActive {
		b.WriteString("On-chain Contract: ACTIVE\n")
	} else {
		b.WriteString("Demo Mode: Simulated data\n")
	}

	fmt.Fprintf(b, "\nThis %s analysis combines %d intelligence dimension%s with real-time market data.",
		breadthWord(doc.Provenance.DimensionCount),
		doc.Provenance.DimensionCount,
		plural(doc.Provenance.DimensionCount))
}

func renderDescriptive(b *strings.Builder, doc *Document) {
	fmt.Fprintf(b, "%s ACTIVATED\n\n", strings.ToUpper(doc.AnalysisType))

	var summaries []string
	for _, d := range doc.Dimensions {
		summaries = append(summaries, fmt.Sprintf("%s ANALYSIS:\n%s", strings.ToUpper(d.Title), d.Description))
	}
	b.WriteString(strings.Join(summaries, "\n\n"))
	b.WriteString("\n")

	if m := doc.Metrics; m != nil {
		b.WriteString("\nCURRENT PERFORMANCE METRICS:\n")
		fmt.Fprintf(b, "- Analysis Dimensions: %d/%d active\n", m.ActiveDimensions, m.CatalogSize)
		fmt.Fprintf(b, "- ETH Base Layer: $%.2f - Your primary DeFi foundation\n", m.ETHPrice)
		fmt.Fprintf(b, "- AI Collaboration Score: %.0f%%\n", m.CollaborationScore*100)
		fmt.Fprintf(b, "- Protocols Analyzed: %d\n", m.ProtocolsAnalyzed)
	}

	if eco := doc.Ecosystem; eco != nil {
		b.WriteString("\nDEFI ECOSYSTEM:\n")
		fmt.Fprintf(b, "- Total Value Locked: $%.1fB\n", eco.TotalTVL/1e9)
		for _, p := range eco.TopProtocols {
			fmt.Fprintf(b, "- %s: $%.1fB (%s)\n", p.Name, p.TVL/1e9, p.Category)
		}
	}

	b.WriteString("\nINTEGRATED DATA SOURCES:\n")
	b.WriteString(strings.Join(doc.Provenance.DataSources, "\n"))
	b.WriteString("\n")

	fmt.Fprintf(b, "\nOPTIMIZATION OPPORTUNITY:\nYour %s analysis is ready. Ask me about specific protocols or strategies for personalized insights.",
		depthWord(doc.Provenance.DimensionCount))

	if doc.OnChain != nil {
		r := doc.OnChain.Result
		b.WriteString("\n\nON-CHAIN VERIFICATION:\n")
		fmt.Fprintf(b, "- Quest ID: #%d\n", r.Quest.ID)
		fmt.Fprintf(b, "- Truth Level: %s\n", r.Quest.TruthLabel())
		fmt.Fprintf(b, "- AI Insight: %q\n", r.TruthMessage)
		fmt.Fprintf(b, "- Timestamp: %s", r.Quest.Timestamp.Format("2006-01-02 15:04:05"))
	}
}

func breadthWord(n int) string {
	switch n {
	case 3:
		return "comprehensive"
	case 2:
		return "enhanced"
	default:
		return "focused"
	}
}

func depthWord(n int) string {
	switch n {
	case 3:
		return "full-spectrum"
	case 2:
		return "dual-dimension"
	default:
		return "focused"
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// withThousands renders a price with comma separators and no decimals,
// matching how the dashboard shows BTC.
func withThousands(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Welcome is the session-start system message.
func Welcome(trust *session.TrustState) string {
	return fmt.Sprintf(`ECHO3 COLLABORATIVE INTELLIGENCE INITIALIZED

CORE MISSION: "Reducing noise, return to Truth."

HOW I HELP YOU BE MORE EFFICIENT:
- Learn from YOUR successful DeFi strategies
- Provide personalized protocol analysis
- Identify opportunities that match your patterns
- Security-check investments before you make them

YOUR CURRENT AI PROFILE:
- Collaboration Score: %.0f%% - We work well together
- Success Pattern Recognition: %.0f%% - Strong learning foundation
- Analysis Confidence: %.0f%% - Getting smarter with each interaction

MULTI-DIMENSIONAL ANALYSIS READY:
- Select 1 card for focused analysis
- Select 2 cards for enhanced insights
- Select 3 cards for comprehensive intelligence

Pick any combination of modes, then ask me about a specific DeFi decision. The more dimensions you select, the deeper the analysis!`,
		trust.CollaborationScore*100, trust.TruthScore*100, trust.Confidence*100)
}

// Guide is the assistant message emitted when the selection changes.
func Guide(sel *catalog.Selection, confidence float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s ACTIVATED\n\n", strings.ToUpper(sel.Describe()))
	fmt.Fprintf(&b, "I'm analyzing your situation using %d intelligence dimension%s:\n", sel.Len(), plural(sel.Len()))
	for _, d := range sel.Dimensions() {
		fmt.Fprintf(&b, "- %s: %s\n", d.Title, d.Description)
	}

	b.WriteString("\nDATA SOURCES INTEGRATED:\n")
	b.WriteString(strings.Join(sel.DataSources(), "\n"))
	b.WriteString("\n")

	fmt.Fprintf(&b, "\nANALYSIS CONFIDENCE: %.0f%%\n", confidence*100)
	fmt.Fprintf(&b, "PROCESSING CAPABILITY: %s\n", sel.Depth())
	b.WriteString("\nREADY FOR MULTI-DIMENSIONAL INSIGHTS! Ask me anything about your DeFi strategy.")

	return b.String()
}

// ConnectBanner is the system message emitted after a wallet connect.
func ConnectBanner(info *ledger.WalletInfo, contractAddr string, totalQuests int64, contractActive bool, trust *session.TrustState) string {
	mode := "DEMO"
	intelligence := "Demo Intelligence"
	status := "Demo Mode"
	closing := "Running in demo mode. Deploy contract for full functionality."
	contractLine := "Demo Mode"
	if contractActive {
		mode = "ACTIVE"
		intelligence = "On-chain Intelligence"
		status = fmt.Sprintf("Contract Active - %d quests processed", totalQuests)
		closing = "Ready for on-chain AI analysis!"
		contractLine = contractAddr
	}

	addr := info.Address
	if len(addr) > 14 {
		addr = addr[:8] + "..." + addr[len(addr)-6:]
	}

	return fmt.Sprintf(`WALLET CONNECTED - ECHO3 AI %s

Address: %s
Network: %s (Chain ID: %d)
Balance: %s ETH
Contract: %s

AI ASSISTANT STATUS: %s
Mode: %s
Confidence: %.0f%%
Success Rate: %.0f%%

%s`,
		mode, addr, info.NetworkName, info.ChainID, info.Balance, contractLine,
		status, intelligence, trust.Confidence*100, trust.SuccessRate*100, closing)
}

// Degraded is the generic failure message emitted when composition breaks.
const Degraded = "Truth analysis temporarily unavailable. Your AI assistant is adapting to new DeFi realities."
