// internal/response/response.go
package response

import (
	"echo3/internal/advisor"
	"echo3/internal/catalog"
	"echo3/internal/market"
	"echo3/internal/quest"
)

// Branch names the composition path a document came from.
type Branch string

const (
	BranchAdvisory    Branch = "advisory"
	BranchDescriptive Branch = "descriptive"
)

// Document is a composed analysis response as typed sections. The
// orchestrator builds documents; only the renderer turns them into
// display text.
type Document struct {
	Branch       Branch
	AnalysisType string

	Modules    []ModuleStatus
	Dimensions []DimensionSummary

	Market    *market.Snapshot
	Ecosystem *market.TVLReport
	Advisory  *advisor.Recommendation
	Metrics   *PerformanceMetrics
	OnChain   *OnChainSection

	Provenance Provenance
}

// ModuleStatus marks one dimension module active in the advisory branch.
type ModuleStatus struct {
	Title string
}

// DimensionSummary carries one dimension's description for the
// descriptive branch.
type DimensionSummary struct {
	Title       string
	Description string
}

// PerformanceMetrics is the descriptive branch's trust readout.
type PerformanceMetrics struct {
	ActiveDimensions   int
	CatalogSize        int
	ETHPrice           float64
	CollaborationScore float64
	ProtocolsAnalyzed  int
}

// OnChainSection is present only when the quest round trip succeeded.
type OnChainSection struct {
	Result *quest.Result
}

// Provenance lists the data sources behind the document.
type Provenance struct {
	DataSources    []string
	ContractActive bool
	DimensionCount int
}

// NewAdvisory assembles the advisory-branch document.
func NewAdvisory(sel *catalog.Selection, snap *market.Snapshot, rec advisor.Recommendation, questResult *quest.Result, contractActive bool) *Document {
	doc := &Document{
		Branch:       BranchAdvisory,
		AnalysisType: sel.Describe(),
		Market:       snap,
		Advisory:     &rec,
		Provenance: Provenance{
			DataSources:    sel.DataSources(),
			ContractActive: contractActive,
			DimensionCount: sel.Len(),
		},
	}
	for _, d := range sel.Dimensions() {
		doc.Modules = append(doc.Modules, ModuleStatus{Title: d.Title})
	}
	if questResult != nil {
		doc.OnChain = &OnChainSection{Result: questResult}
	}
	return doc
}

// NewDescriptive assembles the descriptive-branch document.
func NewDescriptive(sel *catalog.Selection, metrics PerformanceMetrics, tvl *market.TVLReport, questResult *quest.Result, contractActive bool) *Document {
	doc := &Document{
		Branch:       BranchDescriptive,
		AnalysisType: sel.Describe(),
		Metrics:      &metrics,
		Ecosystem:    tvl,
		Provenance: Provenance{
			DataSources:    sel.DataSources(),
			ContractActive: contractActive,
			DimensionCount: sel.Len(),
		},
	}
	for _, d := range sel.Dimensions() {
		doc.Dimensions = append(doc.Dimensions, DimensionSummary{
			Title:       d.Title,
			Description: d.Description,
		})
	}
	if questResult != nil {
		doc.OnChain = &OnChainSection{Result: questResult}
	}
	return doc
}
