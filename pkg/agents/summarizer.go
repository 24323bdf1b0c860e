package agents

import (
	"context"

	"finbrief/pkg/agentcall"
)

// BriefRequest is the payload sent to the summarization collaborator.
type BriefRequest struct {
	Query           string      `json:"query"`
	MarketData      MarketData  `json:"market_data"`
	News            NewsSection `json:"news"`
	RetrievedChunks []string    `json:"retrieved_chunks"`
}

// SummarizerAgent wraps the language-model summarization collaborator.
// Success payload: {"summary": string}.
type SummarizerAgent struct {
	client *agentcall.Client
	brief  agentcall.Target
}

func NewSummarizerAgent(client *agentcall.Client, brief agentcall.Target) *SummarizerAgent {
	return &SummarizerAgent{client: client, brief: brief}
}

func (a *SummarizerAgent) GenerateBrief(ctx context.Context, req BriefRequest) agentcall.Outcome {
	return a.client.PostJSON(ctx, a.brief, req)
}
