package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/salon16/booking/logger"
)

const (
	// AdminTopic is the broadcast topic every admin device subscribes to.
	AdminTopic = "admins"

	// MulticastBatchSize is the hard per-call token ceiling imposed by the
	// push provider, not a tunable.
	MulticastBatchSize = 500

	fcmSendURL = "https://fcm.googleapis.com/fcm/send"
)

// PushSender delivers push notifications to admin devices.
type PushSender interface {
	SendToTopic(ctx context.Context, topic, title, body string) error
	SendMulticast(ctx context.Context, tokens []string, title, body string) error
}

// FCMClient implements PushSender against the FCM HTTP API.
type FCMClient struct {
	ServerKey string
	Endpoint  string
	HTTP      *http.Client
}

// NewFCMClient builds a client from FCM_SERVER_KEY in the environment.
func NewFCMClient() *FCMClient {
	return &FCMClient{
		ServerKey: os.Getenv("FCM_SERVER_KEY"),
		Endpoint:  fcmSendURL,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmPayload struct {
	To              string          `json:"to,omitempty"`
	RegistrationIDs []string        `json:"registration_ids,omitempty"`
	Notification    fcmNotification `json:"notification"`
}

// SendToTopic publishes a notification to every subscriber of a topic.
func (f *FCMClient) SendToTopic(ctx context.Context, topic, title, body string) error {
	payload := fcmPayload{
		To:           "/topics/" + topic,
		Notification: fcmNotification{Title: title, Body: body},
	}
	return f.send(ctx, payload)
}

// SendMulticast delivers a notification to a list of device tokens in a
// single call. Callers must respect MulticastBatchSize.
func (f *FCMClient) SendMulticast(ctx context.Context, tokens []string, title, body string) error {
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) > MulticastBatchSize {
		return fmt.Errorf("multicast batch of %d exceeds provider limit of %d", len(tokens), MulticastBatchSize)
	}
	payload := fcmPayload{
		RegistrationIDs: tokens,
		Notification:    fcmNotification{Title: title, Body: body},
	}
	return f.send(ctx, payload)
}

func (f *FCMClient) send(ctx context.Context, payload fcmPayload) error {
	if f.ServerKey == "" {
		return fmt.Errorf("fcm server key not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize fcm payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to construct fcm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+f.ServerKey)

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("fcm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // cap at 1MB
		logger.ErrorLogger.Errorf("FCM returned non-2xx status %d: %s", resp.StatusCode, string(b))
		return fmt.Errorf("fcm returned status %d", resp.StatusCode)
	}
	return nil
}
