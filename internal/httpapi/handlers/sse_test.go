package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func runRelay(ctx context.Context, feed func(chunks chan<- string, errs chan<- error)) string {
	chunks := make(chan string, 16)
	errs := make(chan error, 1)
	go func() {
		defer close(chunks)
		defer close(errs)
		feed(chunks, errs)
	}()

	rec := httptest.NewRecorder()
	relaySSE(ctx, rec, rec, chunks, errs)
	return rec.Body.String()
}

func TestRelaySSE_ChunksThenDone(t *testing.T) {
	body := runRelay(context.Background(), func(chunks chan<- string, errs chan<- error) {
		chunks <- "one"
		chunks <- "two"
		chunks <- "three"
	})

	want := "data: {\"text\":\"one\"}\n\n" +
		"data: {\"text\":\"two\"}\n\n" +
		"data: {\"text\":\"three\"}\n\n" +
		"data: [DONE]\n\n"
	if body != want {
		t.Fatalf("unexpected stream:\n%q\nwant:\n%q", body, want)
	}
}

func TestRelaySSE_ErrorEndsStreamWithoutDone(t *testing.T) {
	body := runRelay(context.Background(), func(chunks chan<- string, errs chan<- error) {
		chunks <- "partial"
		errs <- context.DeadlineExceeded
	})

	if !strings.Contains(body, "data: {\"text\":\"partial\"}\n\n") {
		t.Fatalf("text record missing: %q", body)
	}
	if strings.Count(body, "\"error\"") != 1 {
		t.Fatalf("expected exactly one error record: %q", body)
	}
	if strings.Contains(body, "[DONE]") {
		t.Fatalf("error stream must not end with [DONE]: %q", body)
	}
	// nothing after the error record
	if !strings.HasSuffix(body, "\n\n") {
		t.Fatalf("stream not closed cleanly: %q", body)
	}
}

func TestRelaySSE_QueuedDeltasFlushedBeforeError(t *testing.T) {
	// Providers hand the relay a buffered channel, so deltas can still be
	// queued when the error arrives. They must be written first, every time.
	for i := 0; i < 200; i++ {
		chunks := make(chan string, 16)
		errs := make(chan error, 1)
		chunks <- "par"
		chunks <- "tial"
		errs <- errors.New("boom")
		close(chunks)
		close(errs)

		rec := httptest.NewRecorder()
		relaySSE(context.Background(), rec, rec, chunks, errs)

		want := "data: {\"text\":\"par\"}\n\n" +
			"data: {\"text\":\"tial\"}\n\n" +
			"data: {\"error\":\"boom\"}\n\n"
		if got := rec.Body.String(); got != want {
			t.Fatalf("run %d: queued delta lost:\n%q\nwant:\n%q", i, got, want)
		}
	}
}

func TestRelaySSE_ImmediateError(t *testing.T) {
	body := runRelay(context.Background(), func(chunks chan<- string, errs chan<- error) {
		errs <- context.DeadlineExceeded
	})

	if strings.Contains(body, "\"text\"") || strings.Contains(body, "[DONE]") {
		t.Fatalf("expected only an error record: %q", body)
	}
	if strings.Count(body, "\"error\"") != 1 {
		t.Fatalf("expected exactly one error record: %q", body)
	}
}

func TestRelaySSE_ClientDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	chunks := make(chan string) // unbuffered: producer blocks until relay pulls
	errs := make(chan error, 1)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		defer close(chunks)
		defer close(errs)
		for {
			select {
			case chunks <- "tick":
			case <-ctx.Done():
				return
			}
		}
	}()

	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		relaySSE(ctx, rec, rec, chunks, errs)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("relay did not stop on context cancellation")
	}
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatalf("upstream pull loop did not stop after disconnect")
	}
	if strings.Contains(rec.Body.String(), "[DONE]") {
		t.Fatalf("cancelled stream must not emit [DONE]")
	}
}
