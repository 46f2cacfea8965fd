package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	mux "github.com/modelmux/modelmux-go"
	"github.com/modelmux/modelmux-go/retry"
)

// streamDoneMarker terminates a server-sent event stream.
const streamDoneMarker = "[DONE]"

// Chunk is one server-sent data payload from a streaming response.
type Chunk struct {
	Data []byte
	Err  error
}

// Stream sends a request and returns a single-pass channel of raw data
// payloads from the server-sent event stream. The channel is closed when
// the server sends the end marker, the stream ends, or an error is
// delivered. Establishing the connection is retried per the transport's
// retry policy; chunks themselves are never retried.
func (t *Transport) Stream(ctx context.Context, path string, body any) (<-chan Chunk, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = data
	}

	return retry.DoStreamWithEvents(ctx, t.retryConfig, t.retryEvents, func() (<-chan Chunk, error) {
		return t.openStream(ctx, path, payload)
	})
}

// openStream performs one connection attempt and starts the reader goroutine.
func (t *Transport) openStream(ctx context.Context, path string, payload []byte) (<-chan Chunk, error) {
	req, err := t.newRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, mux.NewNetworkError("stream request failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, classifyStatus(resp, respBody)
	}

	ch := make(chan Chunk, 16)
	go t.readStream(ctx, resp.Body, ch)
	return ch, nil
}

// readStream scans server-sent event lines, forwarding data payloads
// until the end marker or EOF.
func (t *Transport) readStream(ctx context.Context, rc io.ReadCloser, ch chan<- Chunk) {
	defer close(ch)
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == streamDoneMarker {
			return
		}

		select {
		case ch <- Chunk{Data: []byte(data)}:
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		ch <- Chunk{Err: mux.NewNetworkError("stream interrupted", err)}
	}
}
