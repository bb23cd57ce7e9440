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

const openAIDefaultModel = "gpt-4o-mini"

type OpenAIProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	// StreamClient carries no global timeout; the request ctx bounds streams.
	StreamClient *http.Client
}

type openAIMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatReq struct {
	Model     string      `json:"model"`
	Messages  []openAIMsg `json:"messages"`
	MaxTokens int         `json:"max_tokens,omitempty"`
	Stream    bool        `json:"stream"`
}

type openAIChatResp struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      openAIMsg `json:"message"`
		FinishReason string    `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type openAIStreamResp struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewOpenAIProvider(baseURL, apiKey string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIProvider{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		Client:       &http.Client{Timeout: 90 * time.Second},
		StreamClient: &http.Client{},
	}
}

func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

// buildRequest delivers the system prompt as a leading system turn.
func (p *OpenAIProvider) buildRequest(req ChatRequest, stream bool) openAIChatReq {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = openAIDefaultModel
	}

	msgs := make([]openAIMsg, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openAIMsg{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, openAIMsg{Role: m.Role, Content: m.Content})
	}

	return openAIChatReq{
		Model:     model,
		Messages:  msgs,
		MaxTokens: req.MaxTokens,
		Stream:    stream,
	}
}

func (p *OpenAIProvider) newHTTPRequest(ctx context.Context, body openAIChatReq) (*http.Request, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(p.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	return req, nil
}

func (p *OpenAIProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if p.Client == nil {
		return nil, errors.New("openai: http client is nil")
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return nil, errors.New("openai: api key is required")
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
		return nil, fmt.Errorf("openai: %s", msg)
	}

	var decoded openAIChatResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return nil, errors.New(decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return nil, errors.New("openai: empty response")
	}

	finish := decoded.Choices[0].FinishReason
	if finish == "" {
		finish = "stop"
	}
	return &ChatResult{
		Content:      decoded.Choices[0].Message.Content,
		Model:        decoded.Model,
		FinishReason: finish,
	}, nil
}

// StreamChat streams assistant content deltas via the chat-completions SSE stream.
func (p *OpenAIProvider) StreamChat(ctx context.Context, req ChatRequest) (<-chan string, <-chan error) {
	chunks := make(chan string, 16)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		if p.StreamClient == nil {
			errs <- errors.New("openai: http client is nil")
			return
		}
		if strings.TrimSpace(p.APIKey) == "" {
			errs <- errors.New("openai: api key is required")
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
			errs <- fmt.Errorf("openai: %s", msg)
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
			if data == "[DONE]" {
				return
			}

			var decoded openAIStreamResp
			if err := json.Unmarshal([]byte(data), &decoded); err != nil {
				errs <- err
				return
			}
			if decoded.Error != nil && decoded.Error.Message != "" {
				errs <- errors.New(decoded.Error.Message)
				return
			}
			if len(decoded.Choices) == 0 {
				continue
			}
			delta := decoded.Choices[0].Delta.Content
			if delta != "" {
				select {
				case chunks <- delta:
				case <-ctx.Done():
					return
				}
			}
		}

		if err := sc.Err(); err != nil {
			errs <- err
			return
		}
	}()

	return chunks, errs
}
