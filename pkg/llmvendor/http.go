package llmvendor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rhuss/llmhub/pkg/debug"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 4096

// PostJSON marshals body, POSTs it to url with the given headers, and decodes
// a 2xx response into out. Every failure is returned as a *CallError tagged
// with vendorName.
func PostJSON(ctx context.Context, client *http.Client, vendorName, url string, headers http.Header, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &CallError{Vendor: vendorName, Message: fmt.Sprintf("failed to marshal request: %s", err), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &CallError{Vendor: vendorName, Message: fmt.Sprintf("failed to create HTTP request: %s", err), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	debug.Log("vendor", "request", "vendor", vendorName, "url", url, "bytes", len(payload))
	debug.Raw("vendor", string(payload))

	resp, err := client.Do(req)
	if err != nil {
		return &CallError{Vendor: vendorName, Message: fmt.Sprintf("connection error: %s", err), Err: err}
	}
	defer resp.Body.Close()

	debug.Log("vendor", "response", "vendor", vendorName, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &CallError{
			Vendor:     vendorName,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &CallError{Vendor: vendorName, StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to parse response: %s", err), Err: err}
	}
	return nil
}

// errorMessage extracts error.message from a vendor error body. Anthropic
// and OpenAI share this envelope. Falls back to the raw body, then to the
// status text.
func errorMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	if text := string(bytes.TrimSpace(data)); text != "" {
		return debug.Truncate(text, 512)
	}
	return http.StatusText(resp.StatusCode)
}
