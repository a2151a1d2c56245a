package greenapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"idMessage":"BAE5F4886F6F2D05"}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, InstanceID: "1101000001", APIToken: "secret-token"})
	resp, err := client.SendMessage(context.Background(), "972501234567@c.us", "hello there")
	require.NoError(t, err)

	assert.Equal(t, "/waInstance1101000001/sendMessage/secret-token", gotPath)
	assert.Equal(t, "972501234567@c.us", gotBody["chatId"])
	assert.Equal(t, "hello there", gotBody["message"])
	assert.Equal(t, "BAE5F4886F6F2D05", resp.IDMessage)
}

func TestSendMessageErrorIncludesResponseDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, InstanceID: "1101000001", APIToken: "secret-token"})
	_, err := client.SendMessage(context.Background(), "972501234567@c.us", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSendMessageNotConfigured(t *testing.T) {
	client := New(Config{})
	_, err := client.SendMessage(context.Background(), "972501234567@c.us", "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendMessageValidatesInput(t *testing.T) {
	client := New(Config{InstanceID: "1101000001", APIToken: "secret-token"})

	_, err := client.SendMessage(context.Background(), "", "hello")
	assert.Error(t, err)

	_, err = client.SendMessage(context.Background(), "972501234567@c.us", "")
	assert.Error(t, err)
}
