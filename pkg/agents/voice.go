package agents

import (
	"context"

	"finbrief/pkg/agentcall"
)

// VoiceAgent wraps the speech collaborator: STT takes a multipart audio
// upload and answers {"transcript": string}; TTS takes {"text": string}
// and answers raw audio bytes.
type VoiceAgent struct {
	client *agentcall.Client
	stt    agentcall.Target
	tts    agentcall.Target
}

func NewVoiceAgent(client *agentcall.Client, stt, tts agentcall.Target) *VoiceAgent {
	return &VoiceAgent{client: client, stt: stt, tts: tts}
}

func (a *VoiceAgent) Transcribe(ctx context.Context, filename string, audio []byte) agentcall.Outcome {
	return a.client.PostMultipart(ctx, a.stt, "file", filename, audio)
}

type synthesisRequest struct {
	Text string `json:"text"`
}

func (a *VoiceAgent) Synthesize(ctx context.Context, text string) agentcall.Outcome {
	return a.client.PostJSONForBytes(ctx, a.tts, synthesisRequest{Text: text})
}
