package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// relaySSE converts provider chunks into the outbound wire format: one
// `data: {"text":...}` record per delta, a final `data: [DONE]` sentinel on
// success, or exactly one `data: {"error":...}` record (and no sentinel) on
// failure. Text the provider already delivered is always written before an
// error record; the error only replaces records that would have followed it.
// The relay stops pulling as soon as the client disconnects.
func relaySSE(ctx context.Context, w io.Writer, flusher http.Flusher, chunks <-chan string, errs <-chan error) {
	writeRecord := func(payload any) {
		b, err := json.Marshal(payload)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", b)
		flusher.Flush()
	}
	writeText := func(ch string) { writeRecord(map[string]string{"text": ch}) }

	// drainChunks flushes every delta still queued in the channel buffer.
	// Providers stop producing before they report an error, so a
	// non-blocking sweep sees everything that was delivered.
	drainChunks := func() {
		for {
			select {
			case ch, ok := <-chunks:
				if !ok {
					return
				}
				writeText(ch)
			default:
				return
			}
		}
	}

	// finish ends a normally-closed stream: a late error may still be
	// buffered (the provider closes errs before chunks), otherwise [DONE].
	finish := func() {
		if errs != nil {
			select {
			case err, ok := <-errs:
				if ok && err != nil {
					writeRecord(map[string]string{"error": err.Error()})
					return
				}
			default:
			}
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}

	for {
		// Prefer delivered text over a pending error so queued deltas are
		// never dropped.
		select {
		case ch, ok := <-chunks:
			if !ok {
				finish()
				return
			}
			writeText(ch)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			return

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err == nil {
				continue
			}
			drainChunks()
			writeRecord(map[string]string{"error": err.Error()})
			return

		case ch, ok := <-chunks:
			if !ok {
				finish()
				return
			}
			writeText(ch)
		}
	}
}
