package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatCompletionResponse = `{
	"id": "cmpl-1",
	"object": "chat.completion",
	"created": 1,
	"model": "test-model",
	"choices": [
		{"index": 0, "message": {"role": "assistant", "content": "CRISIS"}, "finish_reason": "stop"}
	]
}`

// newCaptureServer records every decoded chat-completion request body.
func newCaptureServer(t *testing.T, bodies *[]map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*bodies = append(*bodies, body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatCompletionResponse))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// Zero-temperature operations must still put a temperature on the wire;
// a missing field would let the vendor default (1.0) apply.
func TestOpenAICompleterSendsZeroTemperature(t *testing.T) {
	var bodies []map[string]any
	srv := newCaptureServer(t, &bodies)

	c := NewOpenAICompleter(srv.URL, "test-key", "test-model", time.Second)
	out, err := c.Complete(context.Background(), Request{
		System:    "sys",
		User:      "usr",
		MaxTokens: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "CRISIS", out)

	require.Len(t, bodies, 1)
	body := bodies[0]

	temp, ok := body["temperature"]
	require.True(t, ok, "temperature field missing from API request body")
	tempVal, ok := temp.(float64)
	require.True(t, ok)
	assert.Greater(t, tempVal, 0.0)
	assert.Less(t, tempVal, 1e-30)

	assert.Equal(t, float64(5), body["max_tokens"])
}

func TestOpenAICompleterPassesThroughTemperature(t *testing.T) {
	var bodies []map[string]any
	srv := newCaptureServer(t, &bodies)

	c := NewOpenAICompleter(srv.URL, "test-key", "test-model", time.Second)
	_, err := c.Complete(context.Background(), Request{
		System:      "sys",
		User:        "usr",
		MaxTokens:   100,
		Temperature: 0.7,
	})
	require.NoError(t, err)

	require.Len(t, bodies, 1)
	assert.InDelta(t, 0.7, bodies[0]["temperature"], 1e-6)
}
