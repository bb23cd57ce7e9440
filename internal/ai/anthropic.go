package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicVersion      = "2023-06-01"
	anthropicDefaultModel = "claude-sonnet-4-20250514"
)

type AnthropicProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	// StreamClient carries no global timeout; the request ctx bounds streams.
	StreamClient *http.Client
}

type anthropicMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicChatReq struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	System    string         `json:"system,omitempty"`
	Messages  []anthropicMsg `json:"messages"`
	Stream    bool           `json:"stream,omitempty"`
}

type anthropicChatResp struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// anthropicStreamEvent covers every event type the Messages API emits;
// dispatch is on Type.
type anthropicStreamEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type       string `json:"type"`
		Text       string `json:"text"`
		StopReason string `json:"stop_reason"`
	} `json:"delta"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewAnthropicProvider(baseURL, apiKey string) *AnthropicProvider {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	return &AnthropicProvider{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		Client:       &http.Client{Timeout: 90 * time.Second},
		StreamClient: &http.Client{},
	}
}

func (p *AnthropicProvider) Name() string { return ProviderAnthropic }

// buildRequest folds any system-role turns into the dedicated system field;
// the Messages API rejects them inside the messages array.
func (p *AnthropicProvider) buildRequest(req ChatRequest, stream bool) anthropicChatReq {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = anthropicDefaultModel
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	system := req.System
	msgs := make([]anthropicMsg, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == "system" {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		msgs = append(msgs, anthropicMsg{Role: m.Role, Content: m.Content})
	}

	return anthropicChatReq{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  msgs,
		Stream:    stream,
	}
}

func (p *AnthropicProvider) newHTTPRequest(ctx context.Context, body anthropicChatReq) (*http.Request, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/v1/messages", strings.TrimRight(p.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	return req, nil
}

func (p *AnthropicProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if p.Client == nil {
		return nil, errors.New("anthropic: http client is nil")
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return nil, errors.New("anthropic: api key is required")
	}

	httpReq, err := p.newHTTPRequest(ctx, p.buildRequest(req, false))
	if err != nil {
		return nil, err
	}

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("anthropic: %s", msg)
	}

	var decoded anthropicChatResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return nil, errors.New(decoded.Error.Message)
	}
	if len(decoded.Content) == 0 {
		return nil, errors.New("anthropic: empty response")
	}

	finish := decoded.StopReason
	if finish == "" {
		finish = "stop"
	}
	return &ChatResult{
		Content:      decoded.Content[0].Text,
		Model:        decoded.Model,
		FinishReason: finish,
	}, nil
}

// StreamChat streams assistant text deltas from the Messages API event stream.
func (p *AnthropicProvider) StreamChat(ctx context.Context, req ChatRequest) (<-chan string, <-chan error) {
	chunks := make(chan string, 16)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		if p.StreamClient == nil {
			errs <- errors.New("anthropic: http client is nil")
			return
		}
		if strings.TrimSpace(p.APIKey) == "" {
			errs <- errors.New("anthropic: api key is required")
			return
		}

		httpReq, err := p.newHTTPRequest(ctx, p.buildRequest(req, true))
		if err != nil {
			errs <- err
			return
		}

		resp, err := p.StreamClient.Do(httpReq)
		if err != nil {
			errs <- err
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
			msg := strings.TrimSpace(string(body))
			if msg == "" {
				msg = fmt.Sprintf("status %d", resp.StatusCode)
			}
			errs <- fmt.Errorf("anthropic: %s", msg)
			return
		}

		sc := bufio.NewScanner(resp.Body)
		buf := make([]byte, 0, 64*1024)
		sc.Buffer(buf, 2*1024*1024)

		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || !strings.HasPrefix(line, "data:") {
				continue
			}
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))

			var ev anthropicStreamEvent
			if err := json.Unmarshal([]byte(data), &ev); err != nil {
				errs <- err
				return
			}

			switch ev.Type {
			case "content_block_delta":
				if ev.Delta.Type == "text_delta" && ev.Delta.Text != "" {
					select {
					case chunks <- ev.Delta.Text:
					case <-ctx.Done():
						return
					}
				}
			case "message_stop":
				return
			case "error":
				if ev.Error != nil && ev.Error.Message != "" {
					errs <- errors.New(ev.Error.Message)
				} else {
					errs <- errors.New("anthropic: stream error")
				}
				return
			}
		}

		if err := sc.Err(); err != nil {
			errs <- err
			return
		}
	}()

	return chunks, errs
}
