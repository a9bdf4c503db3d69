package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFCMClient(server *httptest.Server) *FCMClient {
	return &FCMClient{
		ServerKey: "test-server-key",
		Endpoint:  server.URL,
		HTTP:      server.Client(),
	}
}

func TestFCMClientSendToTopic(t *testing.T) {
	var got fcmPayload
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestFCMClient(server)
	err := client.SendToTopic(context.Background(), AdminTopic, "New Booking", "details")
	require.NoError(t, err)

	assert.Equal(t, "key=test-server-key", authHeader)
	assert.Equal(t, "/topics/admins", got.To)
	assert.Empty(t, got.RegistrationIDs)
	assert.Equal(t, "New Booking", got.Notification.Title)
	assert.Equal(t, "details", got.Notification.Body)
}

func TestFCMClientSendMulticast(t *testing.T) {
	var got fcmPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestFCMClient(server)
	err := client.SendMulticast(context.Background(), []string{"tok-a", "tok-b"}, "title", "body")
	require.NoError(t, err)

	assert.Empty(t, got.To)
	assert.Equal(t, []string{"tok-a", "tok-b"}, got.RegistrationIDs)
}

func TestFCMClientRejectsOversizedBatch(t *testing.T) {
	client := &FCMClient{ServerKey: "k", Endpoint: "http://unused", HTTP: http.DefaultClient}

	tokens := make([]string, MulticastBatchSize+1)
	err := client.SendMulticast(context.Background(), tokens, "t", "b")
	assert.Error(t, err)
}

func TestFCMClientEmptyTokenListIsNoop(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestFCMClient(server)
	require.NoError(t, client.SendMulticast(context.Background(), nil, "t", "b"))
	assert.False(t, called)
}

func TestFCMClientNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestFCMClient(server)
	err := client.SendToTopic(context.Background(), AdminTopic, "t", "b")
	assert.Error(t, err)
}

func TestFCMClientMissingServerKey(t *testing.T) {
	client := &FCMClient{Endpoint: "http://unused", HTTP: http.DefaultClient}
	err := client.SendToTopic(context.Background(), AdminTopic, "t", "b")
	assert.Error(t, err)
}
