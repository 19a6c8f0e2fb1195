package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrEventTypeNotAllowed = errors.New("event topic not allowed")

// HTTPClient represents an interface for the Webhook to send events with.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// EventLog is the struct that will be send to the Webhook.URL
type EventLog struct {
	Topics     []string  `json:"topics"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// Webhook can send a Event via POST Request to a specified URL.
type Webhook struct {
	ID            string
	HTTPClient    HTTPClient
	URL           string
	AllowedTopics []string
}

// hasTopic checks if Webhook.AllowedTopics contain one of the given event's topics.
func (webhook Webhook) hasTopic(e EventLog) bool {
	for _, at := range webhook.AllowedTopics {
		for _, et := range e.Topics {
			if at == et {
				return true
			}
		}
	}
	return false
}

// DispatchEvent marshals the EventLog into JSON and sends it in a POST Request to the
// Webhook.URL. Events without an allowed topic are rejected with ErrEventTypeNotAllowed.
func (webhook Webhook) DispatchEvent(ctx context.Context, e EventLog) error {
	if !webhook.hasTopic(e) {
		return ErrEventTypeNotAllowed
	}

	bb, err := json.Marshal(e)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook.URL, bytes.NewReader(bb))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := webhook.HTTPClient.Do(request)
	if err != nil {
		return err
	}
	// We don't care about the client's response, but we should still close the client's body if it exists.
	// If not closed the underlying connection cannot be reused for further requests.
	// See https://pkg.go.dev/net/http#Client.Do for more details.
	if resp == nil {
		return nil
	}
	if resp.Body != nil {
		_ = resp.Body.Close()
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook %q responded with %s", webhook.ID, resp.Status)
	}

	return nil
}
