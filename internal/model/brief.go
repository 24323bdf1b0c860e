package model

import "finbrief/pkg/agents"

// BriefComponents carries every raw component that went into a brief so
// callers can audit what the summary was built from.
type BriefComponents struct {
	MarketData agents.MarketData
	News       agents.NewsSection
	Context    []string
}

// BriefResult is the unit of work for the text path.
type BriefResult struct {
	Summary    string
	Components BriefComponents
}

// VoiceBriefResult is built incrementally across the three voice stages.
// Fields populated by an earlier stage persist even when a later stage
// degrades; Errors records one entry per failed stage, in stage order.
type VoiceBriefResult struct {
	Query      string
	Summary    string
	Components BriefComponents
	Audio      []byte
	Errors     []string
}
