package brief

import (
	"context"
	"encoding/json"
	"testing"

	"finbrief/pkg/agentcall"
	"finbrief/pkg/agents"

	"github.com/go-playground/assert/v2"
)

type fakeCollaborators struct {
	exposure  agentcall.Outcome
	earnings  agentcall.Outcome
	news      agentcall.Outcome
	retrieved agentcall.Outcome

	briefRequests []agents.BriefRequest
	briefOutcome  agentcall.Outcome
}

func (f *fakeCollaborators) Exposure(ctx context.Context) agentcall.Outcome {
	return f.exposure
}

func (f *fakeCollaborators) EarningsSurprises(ctx context.Context) agentcall.Outcome {
	return f.earnings
}

func (f *fakeCollaborators) News(ctx context.Context) agentcall.Outcome {
	return f.news
}

func (f *fakeCollaborators) Query(ctx context.Context, question string, topK int) agentcall.Outcome {
	return f.retrieved
}

func (f *fakeCollaborators) GenerateBrief(ctx context.Context, req agents.BriefRequest) agentcall.Outcome {
	f.briefRequests = append(f.briefRequests, req)
	return f.briefOutcome
}

func ok(body string) agentcall.Outcome {
	return agentcall.Outcome{Body: []byte(body)}
}

func down() agentcall.Outcome {
	return agentcall.Unavailable("connection refused")
}

func healthy() *fakeCollaborators {
	return &fakeCollaborators{
		exposure:     ok(`{"exposure":22.4}`),
		earnings:     ok(`{"TSMC":4.5,"Samsung":-2.1}`),
		news:         ok(`{"Reuters":[{"title":"Chips rally","summary":"Asia tech gained."}]}`),
		retrieved:    ok(`{"results":["snippet one","snippet two"]}`),
		briefOutcome: ok(`{"summary":"All quiet in Asia tech."}`),
	}
}

func TestCompose_AllCollaboratorsHealthy(t *testing.T) {
	f := healthy()
	result := NewComposer(f, f, f, f).Compose(context.Background(), "asia tech?")

	assert.Equal(t, "All quiet in Asia tech.", result.Summary)
	assert.Equal(t, 22.4, result.Components.MarketData.Exposure)
	assert.Equal(t, 4.5, result.Components.MarketData.Earnings["TSMC"])
	assert.Equal(t, true, result.Components.News.Available())
	assert.Equal(t, []string{"snippet one", "snippet two"}, result.Components.Context)

	// The summarizer consumed the merged bundle.
	assert.Equal(t, 1, len(f.briefRequests))
	assert.Equal(t, "asia tech?", f.briefRequests[0].Query)
	assert.Equal(t, 22.4, f.briefRequests[0].MarketData.Exposure)
	assert.Equal(t, []string{"snippet one", "snippet two"}, f.briefRequests[0].RetrievedChunks)
}

func TestCompose_ExposureDownDefaultsToZero(t *testing.T) {
	f := healthy()
	f.exposure = down()

	result := NewComposer(f, f, f, f).Compose(context.Background(), "q")

	assert.Equal(t, 0.0, result.Components.MarketData.Exposure)
	assert.Equal(t, "All quiet in Asia tech.", result.Summary)
}

func TestCompose_EarningsDownFallsBackToContextScan(t *testing.T) {
	f := healthy()
	f.earnings = down()
	f.retrieved = ok(`{"results":["TSMC reported 4% earnings beat in Q2"]}`)

	result := NewComposer(f, f, f, f).Compose(context.Background(), "q")

	assert.Equal(t, map[string]float64{"TSMC": 4}, result.Components.MarketData.Earnings)
}

func TestCompose_EmptyEarningsAlsoTriggersFallback(t *testing.T) {
	f := healthy()
	f.earnings = ok(`{}`)
	f.retrieved = ok(`{"results":["TSMC reported 4% earnings beat in Q2"]}`)

	result := NewComposer(f, f, f, f).Compose(context.Background(), "q")

	assert.Equal(t, map[string]float64{"TSMC": 4}, result.Components.MarketData.Earnings)
}

func TestCompose_EarningsNeverNil(t *testing.T) {
	f := healthy()
	f.earnings = down()
	f.retrieved = ok(`{"results":["nothing relevant"]}`)

	result := NewComposer(f, f, f, f).Compose(context.Background(), "q")

	assert.NotEqual(t, nil, result.Components.MarketData.Earnings)
	assert.Equal(t, 0, len(result.Components.MarketData.Earnings))
}

func TestCompose_NewsDownYieldsErrorMarker(t *testing.T) {
	f := healthy()
	f.news = down()

	result := NewComposer(f, f, f, f).Compose(context.Background(), "q")

	assert.Equal(t, false, result.Components.News.Available())

	marker, _ := json.Marshal(result.Components.News)
	assert.Equal(t, `{"error":"unavailable"}`, string(marker))
}

func TestCompose_RetrieverDownYieldsSentinelContext(t *testing.T) {
	f := healthy()
	f.retrieved = down()

	result := NewComposer(f, f, f, f).Compose(context.Background(), "q")

	assert.Equal(t, []string{"Market context unavailable"}, result.Components.Context)
}

func TestCompose_ContextTruncatedToTopK(t *testing.T) {
	f := healthy()
	f.retrieved = ok(`{"results":["a","b","c","d","e"]}`)

	result := NewComposer(f, f, f, f).Compose(context.Background(), "q")

	assert.Equal(t, []string{"a", "b", "c"}, result.Components.Context)
}

func TestCompose_SummarizerDownKeepsComponents(t *testing.T) {
	f := healthy()
	f.briefOutcome = down()

	result := NewComposer(f, f, f, f).Compose(context.Background(), "q")

	assert.Equal(t, "Summary service unavailable", result.Summary)
	assert.Equal(t, 22.4, result.Components.MarketData.Exposure)
	assert.Equal(t, true, result.Components.News.Available())
	assert.Equal(t, []string{"snippet one", "snippet two"}, result.Components.Context)
}

func TestCompose_SummarizerMissingSummaryField(t *testing.T) {
	f := healthy()
	f.briefOutcome = ok(`{"unexpected":"shape"}`)

	result := NewComposer(f, f, f, f).Compose(context.Background(), "q")

	assert.Equal(t, "Summary generation failed", result.Summary)
}

func TestCompose_MalformedPayloadsDegradeToDefaults(t *testing.T) {
	f := healthy()
	f.exposure = ok(`{"exposure":"not a number"}`)
	f.earnings = ok(`["wrong","shape"]`)
	f.news = ok(`42`)
	f.retrieved = ok(`{"results":"not a list"}`)

	result := NewComposer(f, f, f, f).Compose(context.Background(), "q")

	assert.Equal(t, 0.0, result.Components.MarketData.Exposure)
	assert.Equal(t, 0, len(result.Components.MarketData.Earnings))
	assert.Equal(t, false, result.Components.News.Available())
	assert.Equal(t, []string{"Market context unavailable"}, result.Components.Context)
	assert.Equal(t, "All quiet in Asia tech.", result.Summary)
}

func TestCompose_EverythingDown(t *testing.T) {
	f := &fakeCollaborators{
		exposure:     down(),
		earnings:     down(),
		news:         down(),
		retrieved:    down(),
		briefOutcome: down(),
	}

	result := NewComposer(f, f, f, f).Compose(context.Background(), "q")

	assert.Equal(t, "Summary service unavailable", result.Summary)
	assert.Equal(t, 0.0, result.Components.MarketData.Exposure)
	assert.Equal(t, 0, len(result.Components.MarketData.Earnings))
	assert.Equal(t, false, result.Components.News.Available())
	assert.Equal(t, []string{"Market context unavailable"}, result.Components.Context)
}

func TestCompose_DeterministicForIdenticalResponses(t *testing.T) {
	f := healthy()
	composer := NewComposer(f, f, f, f)

	first := composer.Compose(context.Background(), "q")
	second := composer.Compose(context.Background(), "q")

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.Equal(t, string(a), string(b))
}
