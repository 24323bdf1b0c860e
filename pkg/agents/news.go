package agents

import (
	"context"

	"finbrief/pkg/agentcall"
)

// NewsAgent wraps the news-scraping collaborator.
// Success payload: mapping source -> list of {title, summary}.
type NewsAgent struct {
	client *agentcall.Client
	news   agentcall.Target
}

func NewNewsAgent(client *agentcall.Client, news agentcall.Target) *NewsAgent {
	return &NewsAgent{client: client, news: news}
}

func (a *NewsAgent) News(ctx context.Context) agentcall.Outcome {
	return a.client.Get(ctx, a.news)
}
