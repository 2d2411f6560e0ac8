package transcribe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkondo/taskping/internal/domain"
)

func TestClient_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AudioRef string `json:"audioRef"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "s3://voice/123.ogg", req.AudioRef)
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "call mom tomorrow"})
	}))
	defer srv.Close()

	text, err := New(srv.URL).Transcribe(context.Background(), "s3://voice/123.ogg")
	require.NoError(t, err)
	assert.Equal(t, "call mom tomorrow", text)
}

func TestClient_Transcribe_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Transcribe(context.Background(), "s3://voice/123.ogg")
	assert.ErrorIs(t, err, domain.ErrTranscribeFailed)
}

func TestClient_Transcribe_EmptyTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"text": ""})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Transcribe(context.Background(), "s3://voice/123.ogg")
	assert.ErrorIs(t, err, domain.ErrTranscribeFailed)
}

func TestClient_Transcribe_ServiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL).Transcribe(context.Background(), "s3://voice/123.ogg")
	assert.ErrorIs(t, err, domain.ErrTranscribeFailed)
}
