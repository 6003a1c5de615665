package completion

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ollama/ollama/api"
)

type OllamaCompleter struct {
	client  *api.Client
	model   string
	timeout time.Duration
	mu      sync.Mutex
}

func NewOllamaCompleter(baseURL, model string, timeout time.Duration) *OllamaCompleter {
	httpClient := &http.Client{}

	c := api.NewClient(&url.URL{
		Scheme: "http",
		Host:   baseURL,
		Path:   "/",
	}, httpClient)

	return &OllamaCompleter{
		client:  c,
		model:   model,
		timeout: timeout,
	}
}

func (o *OllamaCompleter) Complete(ctx context.Context, req Request) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	genReq := &api.GenerateRequest{
		Model:  o.model,
		System: req.System,
		Prompt: req.User,
		Options: map[string]any{
			"temperature": req.Temperature,
			"num_predict": req.MaxTokens,
		},
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var responseFlow []string
	err := o.client.Generate(ctx, genReq, func(resp api.GenerateResponse) error {
		responseFlow = append(responseFlow, resp.Response)
		return nil
	})
	if err != nil {
		return "", err
	}

	return strings.Join(responseFlow, ""), nil
}
