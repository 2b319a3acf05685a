package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	maxAttempts    = 3
	attemptBackoff = 2 * time.Second

	// Long-poll wait passed to getUpdates, in seconds.
	pollTimeout = 10
	pollLimit   = 100
)

// Client is a minimal Telegram Bot API client covering the two calls the
// bot needs: getUpdates (long poll) and sendMessage.
type Client struct {
	baseURL    string
	httpClient *http.Client
	backoff    time.Duration
}

type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	Chat Chat   `json:"chat"`
	From *User  `json:"from"`
	Text string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

func New(token string) *Client {
	return &Client{
		baseURL: "https://api.telegram.org/bot" + token + "/",
		// Must outlive the long-poll wait
		httpClient: &http.Client{Timeout: 20 * time.Second},
		backoff:    attemptBackoff,
	}
}

// GetUpdates long-polls for updates with ids strictly greater than offset-1.
// A timed-out poll returns an empty batch and no error.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	params := url.Values{}
	params.Set("offset", strconv.FormatInt(offset, 10))
	params.Set("timeout", strconv.Itoa(pollTimeout))
	params.Set("limit", strconv.Itoa(pollLimit))

	result, err := c.request(ctx, "getUpdates", params, nil)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}
	return updates, nil
}

// SendMessage delivers text to a chat. Failures after the retry budget are
// reported as false; callers must not assume delivery.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) bool {
	body := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}

	if _, err := c.request(ctx, "sendMessage", nil, body); err != nil {
		log.Printf("telegram: failed to send message to %d: %v", chatID, err)
		return false
	}
	return true
}

// request performs one Bot API call with up to maxAttempts attempts and a
// fixed backoff between them. Non-2xx responses count as retryable failures.
func (c *Client) request(ctx context.Context, method string, params url.Values, jsonBody interface{}) (json.RawMessage, error) {
	reqURL := c.baseURL + method
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := c.do(ctx, reqURL, jsonBody)
		if err == nil {
			return result, nil
		}
		lastErr = err
		log.Printf("telegram: %s attempt %d/%d failed: %v", method, attempt, maxAttempts, err)

		if attempt < maxAttempts {
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, reqURL string, jsonBody interface{}) (json.RawMessage, error) {
	var req *http.Request
	var err error

	if jsonBody != nil {
		payload, merr := json.Marshal(jsonBody)
		if merr != nil {
			return nil, merr
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	}
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}
	if !apiResp.OK {
		return nil, fmt.Errorf("telegram API error: %s", apiResp.Description)
	}
	return apiResp.Result, nil
}
