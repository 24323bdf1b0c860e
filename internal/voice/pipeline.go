package voice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"finbrief/internal/model"
	"finbrief/pkg/agentcall"
)

// DefaultQuery is used when transcription degrades; a voice request still
// produces a sensible brief.
const DefaultQuery = "What's our Asia tech exposure?"

type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio []byte) agentcall.Outcome
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) agentcall.Outcome
}

type BriefComposer interface {
	Compose(ctx context.Context, query string) model.BriefResult
}

// Pipeline chains the three voice stages: speech-to-text, brief
// composition, text-to-speech. Each stage runs even when an earlier one
// degraded; a failed stage appends one entry to the result's Errors and
// the pipeline carries on with whatever it has.
type Pipeline struct {
	stt      Transcriber
	tts      Synthesizer
	composer BriefComposer
}

func NewPipeline(stt Transcriber, tts Synthesizer, composer BriefComposer) *Pipeline {
	return &Pipeline{stt: stt, tts: tts, composer: composer}
}

func (p *Pipeline) Run(ctx context.Context, filename string, audio []byte) (result model.VoiceBriefResult) {
	result.Query = DefaultQuery
	result.Errors = []string{}

	// The pipeline has no fatal outcome: an unexpected defect becomes a
	// stage-failure entry on whatever was built so far.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("voice pipeline panic", "panic", r)
			if result.Summary == "" {
				result.Summary = "Briefing failed"
			}
			result.Errors = append(result.Errors, fmt.Sprintf("voice pipeline internal error: %v", r))
		}
	}()

	if transcript, reason := p.transcribe(ctx, filename, audio); reason == "" {
		result.Query = transcript
	} else {
		result.Errors = append(result.Errors, "speech-to-text failed: "+reason)
	}

	// Composition cannot fail outward; its summary may itself be a
	// degraded placeholder, which is fine to synthesize.
	brief := p.composer.Compose(ctx, result.Query)
	result.Summary = brief.Summary
	result.Components = brief.Components

	if out := p.tts.Synthesize(ctx, result.Summary); out.Available() {
		result.Audio = out.Body
	} else {
		result.Errors = append(result.Errors, "text-to-speech failed: "+out.Reason)
	}

	return result
}

func (p *Pipeline) transcribe(ctx context.Context, filename string, audio []byte) (transcript, reason string) {
	out := p.stt.Transcribe(ctx, filename, audio)
	if !out.Available() {
		return "", out.Reason
	}

	var body struct {
		Transcript string `json:"transcript"`
	}
	if err := out.Decode(&body); err != nil {
		return "", fmt.Sprintf("malformed response: %v", err)
	}
	if strings.TrimSpace(body.Transcript) == "" {
		return "", "empty transcript"
	}
	return body.Transcript, ""
}
