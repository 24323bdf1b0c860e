package agents

import "encoding/json"

// MarketData is the merged portfolio view sent to the summarizer and
// echoed back in the brief components. Earnings is never nil; an empty
// map means no data.
type MarketData struct {
	Exposure float64            `json:"exposure"`
	Earnings map[string]float64 `json:"earnings"`
}

type NewsItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// NewsSection holds scraped headlines grouped by source, or an explicit
// unavailable marker when the news agent could not be reached. The marker
// is kept distinct from an empty result so callers can tell "no news"
// from "service down".
type NewsSection struct {
	Sources map[string][]NewsItem
	Err     string
}

func UnavailableNews() NewsSection {
	return NewsSection{Err: "unavailable"}
}

func (n NewsSection) Available() bool {
	return n.Err == ""
}

func (n NewsSection) MarshalJSON() ([]byte, error) {
	if n.Err != "" {
		return json.Marshal(map[string]string{"error": n.Err})
	}
	if n.Sources == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(n.Sources)
}
