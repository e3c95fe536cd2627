package search

import (
	"github.com/poiesic/evidex/core"
	"github.com/poiesic/evidex/vectorstore"
)

// SearchMonitor provides hooks to observe the search pipeline.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterEncoding(dimension int)
	AfterVectorSearch(points []vectorstore.Point)
	AfterDecoding(results []*core.Result)
	AfterReranking(results []*core.Result)
	Finish(response *core.SearchResponse)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterEncoding(_ int)                     {}
func (n *noopMonitor) AfterVectorSearch(_ []vectorstore.Point) {}
func (n *noopMonitor) AfterDecoding(_ []*core.Result)          {}
func (n *noopMonitor) AfterReranking(_ []*core.Result)         {}
func (n *noopMonitor) Finish(_ *core.SearchResponse)           {}
