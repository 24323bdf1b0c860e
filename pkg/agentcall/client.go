package agentcall

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"
)

// Target is a resolved collaborator endpoint: where to call and how long
// to wait for the full round trip.
type Target struct {
	Service  string
	Endpoint string
	URL      string
	Timeout  time.Duration
}

// Client performs one bounded outbound request per call. It never retries
// and never lets a transport fault escape: network errors, non-2xx
// statuses, expired deadlines and unparseable bodies all collapse into an
// unavailable Outcome. Retry policy, if any, belongs to the caller.
type Client struct {
	http *http.Client
}

func New() *Client {
	return &Client{http: &http.Client{}}
}

func (c *Client) Get(ctx context.Context, t Target) Outcome {
	return c.call(ctx, http.MethodGet, t, "", nil, true)
}

func (c *Client) PostJSON(ctx context.Context, t Target, body any) Outcome {
	data, err := json.Marshal(body)
	if err != nil {
		return Unavailable("encode request body: %v", err)
	}
	return c.call(ctx, http.MethodPost, t, "application/json", bytes.NewReader(data), true)
}

// PostJSONForBytes posts a JSON body but treats the response as an opaque
// byte stream. Used for the TTS endpoint, which answers with raw audio.
func (c *Client) PostJSONForBytes(ctx context.Context, t Target, body any) Outcome {
	data, err := json.Marshal(body)
	if err != nil {
		return Unavailable("encode request body: %v", err)
	}
	return c.call(ctx, http.MethodPost, t, "application/json", bytes.NewReader(data), false)
}

// PostMultipart uploads data as a single multipart file field and expects
// a JSON response.
func (c *Client) PostMultipart(ctx context.Context, t Target, field, filename string, data []byte) Outcome {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return Unavailable("build multipart body: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		return Unavailable("build multipart body: %v", err)
	}
	if err := w.Close(); err != nil {
		return Unavailable("build multipart body: %v", err)
	}
	return c.call(ctx, http.MethodPost, t, w.FormDataContentType(), &buf, true)
}

func (c *Client) call(ctx context.Context, method string, t Target, contentType string, body io.Reader, expectJSON bool) Outcome {
	start := time.Now()
	out := c.roundTrip(ctx, method, t, contentType, body, expectJSON)
	elapsed := time.Since(start)

	observeCall(t, out, elapsed)

	if out.Available() {
		slog.Info("agent call completed",
			"service", t.Service, "endpoint", t.Endpoint, "latency_ms", elapsed.Milliseconds())
	} else {
		slog.Warn("agent call degraded",
			"service", t.Service, "endpoint", t.Endpoint, "reason", out.Reason, "latency_ms", elapsed.Milliseconds())
	}
	return out
}

func (c *Client) roundTrip(ctx context.Context, method string, t Target, contentType string, body io.Reader, expectJSON bool) Outcome {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, t.URL, body)
	if err != nil {
		return Unavailable("build request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Unavailable("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Unavailable("read response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Unavailable("unexpected status %d", resp.StatusCode)
	}
	if expectJSON && !json.Valid(data) {
		return Unavailable("response is not valid JSON")
	}
	return Outcome{Body: data}
}
