package brief

import (
	"context"
	"log/slog"

	"finbrief/internal/model"
	"finbrief/pkg/agentcall"
	"finbrief/pkg/agents"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTopK bounds how many retrieved context snippets a brief uses.
	DefaultTopK = 3

	contextUnavailable = "Market context unavailable"
	summaryUnavailable = "Summary service unavailable"
	summaryFailed      = "Summary generation failed"
)

type MarketDataSource interface {
	Exposure(ctx context.Context) agentcall.Outcome
	EarningsSurprises(ctx context.Context) agentcall.Outcome
}

type NewsSource interface {
	News(ctx context.Context) agentcall.Outcome
}

type Retriever interface {
	Query(ctx context.Context, question string, topK int) agentcall.Outcome
}

type Summarizer interface {
	GenerateBrief(ctx context.Context, req agents.BriefRequest) agentcall.Outcome
}

// Composer merges the four independent collaborator results into one
// market-data bundle and hands it to the summarizer. Every upstream
// absence degrades to a documented default; Compose never fails outright.
type Composer struct {
	market     MarketDataSource
	news       NewsSource
	retriever  Retriever
	summarizer Summarizer
	topK       int
}

func NewComposer(market MarketDataSource, news NewsSource, retriever Retriever, summarizer Summarizer) *Composer {
	return &Composer{
		market:     market,
		news:       news,
		retriever:  retriever,
		summarizer: summarizer,
		topK:       DefaultTopK,
	}
}

func (c *Composer) Compose(ctx context.Context, query string) (result model.BriefResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("brief composition panic", "panic", r)
			result = degradedBrief()
		}
	}()

	var exposure, earnings, news, retrieved agentcall.Outcome

	// The four data-gathering calls are independent; fan them out so the
	// request waits for the slowest call, not the sum of all four.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { exposure = c.market.Exposure(gctx); return nil })
	g.Go(func() error { earnings = c.market.EarningsSurprises(gctx); return nil })
	g.Go(func() error { news = c.news.News(gctx); return nil })
	g.Go(func() error { retrieved = c.retriever.Query(gctx, query, c.topK); return nil })
	g.Wait()

	snippets := contextItems(retrieved, c.topK)

	surprises := earningsMap(earnings)
	if len(surprises) == 0 {
		// Best-effort substitute scanned out of the retrieved text. A
		// heuristic, not authoritative data.
		surprises = ExtractEarnings(snippets)
	}

	components := model.BriefComponents{
		MarketData: agents.MarketData{
			Exposure: exposureValue(exposure),
			Earnings: surprises,
		},
		News:    newsSection(news),
		Context: snippets,
	}

	return model.BriefResult{
		Summary:    c.summarize(ctx, query, components),
		Components: components,
	}
}

// summarize runs strictly after the fan-out because it consumes the
// merged bundle. Its own timeout is the llm endpoint's, much longer than
// the data calls.
func (c *Composer) summarize(ctx context.Context, query string, components model.BriefComponents) string {
	out := c.summarizer.GenerateBrief(ctx, agents.BriefRequest{
		Query:           query,
		MarketData:      components.MarketData,
		News:            components.News,
		RetrievedChunks: components.Context,
	})
	if !out.Available() {
		return summaryUnavailable
	}

	var body struct {
		Summary string `json:"summary"`
	}
	if err := out.Decode(&body); err != nil || body.Summary == "" {
		slog.Warn("summarizer returned no usable summary", "error", err)
		return summaryFailed
	}
	return body.Summary
}

func exposureValue(o agentcall.Outcome) float64 {
	if !o.Available() {
		return 0
	}
	var body struct {
		Exposure float64 `json:"exposure"`
	}
	if err := o.Decode(&body); err != nil {
		slog.Warn("malformed exposure payload", "error", err)
		return 0
	}
	return body.Exposure
}

func earningsMap(o agentcall.Outcome) map[string]float64 {
	if !o.Available() {
		return nil
	}
	var surprises map[string]float64
	if err := o.Decode(&surprises); err != nil {
		slog.Warn("malformed earnings payload", "error", err)
		return nil
	}
	return surprises
}

func newsSection(o agentcall.Outcome) agents.NewsSection {
	if !o.Available() {
		return agents.UnavailableNews()
	}
	var sources map[string][]agents.NewsItem
	if err := o.Decode(&sources); err != nil {
		slog.Warn("malformed news payload", "error", err)
		return agents.UnavailableNews()
	}
	if sources == nil {
		sources = map[string][]agents.NewsItem{}
	}
	return agents.NewsSection{Sources: sources}
}

func contextItems(o agentcall.Outcome, topK int) []string {
	if !o.Available() {
		return []string{contextUnavailable}
	}
	var body struct {
		Results []string `json:"results"`
	}
	if err := o.Decode(&body); err != nil {
		slog.Warn("malformed retrieval payload", "error", err)
		return []string{contextUnavailable}
	}
	if body.Results == nil {
		return []string{}
	}
	if len(body.Results) > topK {
		body.Results = body.Results[:topK]
	}
	return body.Results
}

// degradedBrief is the everything-failed shape, used only when composition
// itself panicked on an unexpected payload defect.
func degradedBrief() model.BriefResult {
	return model.BriefResult{
		Summary: summaryUnavailable,
		Components: model.BriefComponents{
			MarketData: agents.MarketData{Earnings: map[string]float64{}},
			News:       agents.UnavailableNews(),
			Context:    []string{contextUnavailable},
		},
	}
}
