package agents

import (
	"context"

	"finbrief/pkg/agentcall"
)

// PortfolioAgent wraps the portfolio/earnings collaborator.
type PortfolioAgent struct {
	client   *agentcall.Client
	exposure agentcall.Target
	earnings agentcall.Target
}

func NewPortfolioAgent(client *agentcall.Client, exposure, earnings agentcall.Target) *PortfolioAgent {
	return &PortfolioAgent{client: client, exposure: exposure, earnings: earnings}
}

// Exposure fetches the portfolio's regional exposure figure.
// Success payload: {"exposure": number}.
func (a *PortfolioAgent) Exposure(ctx context.Context) agentcall.Outcome {
	return a.client.Get(ctx, a.exposure)
}

// EarningsSurprises fetches the latest earnings-surprise percentages.
// Success payload: mapping ticker -> percentage.
func (a *PortfolioAgent) EarningsSurprises(ctx context.Context) agentcall.Outcome {
	return a.client.Get(ctx, a.earnings)
}
