package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func collectStream(t *testing.T, chunks <-chan string, errs <-chan error) ([]string, error) {
	t.Helper()
	var got []string
	for c := range chunks {
		got = append(got, c)
	}
	for err := range errs {
		if err != nil {
			return got, err
		}
	}
	return got, nil
}

func TestOpenAIChat(t *testing.T) {
	var captured openAIChatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"model":"gpt-4o","choices":[{"message":{"role":"assistant","content":"hello there"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key")
	res, err := p.Chat(context.Background(), ChatRequest{
		Model:     "gpt-4o",
		System:    "be brief",
		MaxTokens: 128,
		Messages:  []Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if res.Content != "hello there" || res.FinishReason != "stop" {
		t.Fatalf("unexpected result: %+v", res)
	}

	// system prompt travels as a leading system turn
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[0].Content != "be brief" {
		t.Fatalf("system turn not prepended: %+v", captured.Messages)
	}
	if captured.MaxTokens != 128 {
		t.Fatalf("max_tokens not forwarded: %d", captured.MaxTokens)
	}
}

func TestOpenAIChat_DefaultModel(t *testing.T) {
	var captured openAIChatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		fmt.Fprint(w, `{"choices":[{"message":{"content":"x"}}]}`)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "k")
	if _, err := p.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}}); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if captured.Model != openAIDefaultModel {
		t.Fatalf("empty model not defaulted: %q", captured.Model)
	}
}

func TestOpenAIChat_UpstreamErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limit exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "k")
	_, err := p.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenAIStreamChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"!\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "k")
	chunks, errs := p.StreamChat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})

	got, err := collectStream(t, chunks, errs)
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if len(got) != 3 || got[0] != "Hel" || got[1] != "lo" || got[2] != "!" {
		t.Fatalf("unexpected chunks: %v", got)
	}
}

func TestOpenAIStreamChat_ErrorMidStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"partial\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"error\":{\"message\":\"boom\"}}\n\n")
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "k")
	chunks, errs := p.StreamChat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})

	got, err := collectStream(t, chunks, errs)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if len(got) != 1 || got[0] != "partial" {
		t.Fatalf("unexpected chunks before error: %v", got)
	}
}

func TestOpenAIStreamChat_LeavesChatClientAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "k")
	if p.StreamClient.Timeout != 0 {
		t.Fatalf("stream client must not carry a global timeout, got %v", p.StreamClient.Timeout)
	}
	before := p.Client.Timeout

	chunks, errs := p.StreamChat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
	if _, err := collectStream(t, chunks, errs); err != nil {
		t.Fatalf("stream error: %v", err)
	}

	if p.Client.Timeout != before {
		t.Fatalf("streaming mutated the non-streaming client timeout: %v -> %v", before, p.Client.Timeout)
	}
}

func TestOpenAIStreamChat_MissingKey(t *testing.T) {
	p := NewOpenAIProvider("http://localhost:0", "")
	chunks, errs := p.StreamChat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
	if _, err := collectStream(t, chunks, errs); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}
