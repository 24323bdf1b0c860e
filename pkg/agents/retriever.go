package agents

import (
	"context"

	"finbrief/pkg/agentcall"
)

// RetrieverAgent wraps the semantic-retrieval collaborator.
// Success payload: {"results": ["snippet", ...]}.
type RetrieverAgent struct {
	client *agentcall.Client
	query  agentcall.Target
}

func NewRetrieverAgent(client *agentcall.Client, query agentcall.Target) *RetrieverAgent {
	return &RetrieverAgent{client: client, query: query}
}

type retrievalRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

func (a *RetrieverAgent) Query(ctx context.Context, question string, topK int) agentcall.Outcome {
	return a.client.PostJSON(ctx, a.query, retrievalRequest{Question: question, TopK: topK})
}
