package handler

import (
	"encoding/base64"

	"finbrief/internal/model"
	"finbrief/pkg/agents"
)

type BriefRequest struct {
	UserQuery string `json:"user_query"`
}

type MarketDataResponse struct {
	Exposure float64            `json:"exposure"`
	Earnings map[string]float64 `json:"earnings"`
}

type ComponentsResponse struct {
	MarketData MarketDataResponse `json:"market_data"`
	News       agents.NewsSection `json:"news"`
	Context    []string           `json:"context"`
}

type BriefResponse struct {
	Summary    string             `json:"summary"`
	Components ComponentsResponse `json:"components"`
}

type VoiceBriefResponse struct {
	Query       string             `json:"query"`
	Summary     string             `json:"summary"`
	Components  ComponentsResponse `json:"components"`
	AudioBase64 *string            `json:"audio_base64"`
	Errors      []string           `json:"errors"`
}

func toComponentsResponse(c model.BriefComponents) ComponentsResponse {
	earnings := c.MarketData.Earnings
	if earnings == nil {
		earnings = map[string]float64{}
	}
	context := c.Context
	if context == nil {
		context = []string{}
	}
	return ComponentsResponse{
		MarketData: MarketDataResponse{
			Exposure: c.MarketData.Exposure,
			Earnings: earnings,
		},
		News:    c.News,
		Context: context,
	}
}

func toBriefResponse(r model.BriefResult) BriefResponse {
	return BriefResponse{
		Summary:    r.Summary,
		Components: toComponentsResponse(r.Components),
	}
}

func toVoiceBriefResponse(r model.VoiceBriefResult) VoiceBriefResponse {
	res := VoiceBriefResponse{
		Query:      r.Query,
		Summary:    r.Summary,
		Components: toComponentsResponse(r.Components),
		Errors:     r.Errors,
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	if len(r.Audio) > 0 {
		encoded := base64.StdEncoding.EncodeToString(r.Audio)
		res.AudioBase64 = &encoded
	}
	return res
}
