package github_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/dltoledo/pautapanel/internal/adapter/driven/github"
	"github.com/dltoledo/pautapanel/internal/domain/port/driven"
)

const contentsPath = "/repos/tjowner/pauta-data/contents/baseaud.csv"

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *ghAdapter.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(
		server.Client(),
		server.URL+"/",
		"tjowner",
		"pauta-data",
		"baseaud.csv",
		"main",
	)
	require.NoError(t, err)

	return client
}

// fileJSON is a helper struct for building contents API responses.
type fileJSON struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	SHA      string `json:"sha"`
	Name     string `json:"name"`
	Path     string `json:"path"`
}

func csvFileJSON(content, sha string) fileJSON {
	return fileJSON{
		Type:     "file",
		Encoding: "base64",
		Content:  base64.StdEncoding.EncodeToString([]byte(content)),
		SHA:      sha,
		Name:     "baseaud.csv",
		Path:     "baseaud.csv",
	}
}

// putBody mirrors the contents API write payload.
type putBody struct {
	Message string  `json:"message"`
	Content string  `json:"content"`
	Branch  string  `json:"branch"`
	SHA     *string `json:"sha"`
}

func TestDownload_ReturnsDecodedContent(t *testing.T) {
	const csv = "data e horário,sala de audiência\n01/01/2024 10:00,Sala 1\n"

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, contentsPath, r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("ref"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(csvFileJSON(csv, "abc123"))
	})

	client := newTestClient(t, handler)
	data, err := client.Download(context.Background())

	require.NoError(t, err)
	assert.Equal(t, csv, string(data))
}

func TestDownload_NonSuccessStatusFails(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"No server is currently available"}`, http.StatusBadGateway)
	})

	client := newTestClient(t, handler)
	_, err := client.Download(context.Background())

	require.Error(t, err)
}

func TestRevision_ReturnsSHA(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(csvFileJSON("x\n", "sha-current"))
	})

	client := newTestClient(t, handler)
	sha, exists, err := client.Revision(context.Background())

	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "sha-current", sha)
}

func TestRevision_AbsentFileIsNotAnError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})

	client := newTestClient(t, handler)
	sha, exists, err := client.Revision(context.Background())

	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "", sha)
}

func TestPut_FirstWriteOmitsSHA(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, contentsPath, r.URL.Path)

		var body putBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Nil(t, body.SHA, "first write must not attach a revision")
		assert.Equal(t, "main", body.Branch)
		assert.NotEmpty(t, body.Message)

		decoded, err := base64.StdEncoding.DecodeString(body.Content)
		require.NoError(t, err)
		assert.Equal(t, "novo\n", string(decoded))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]any{"sha": "sha-created"},
		})
	})

	client := newTestClient(t, handler)
	newSHA, err := client.Put(context.Background(), []byte("novo\n"), "mensagem", "")

	require.NoError(t, err)
	assert.Equal(t, "sha-created", newSHA)
}

func TestPut_UpdateAttachesSHA(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body putBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotNil(t, body.SHA)
		assert.Equal(t, "sha-old", *body.SHA)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]any{"sha": "sha-updated"},
		})
	})

	client := newTestClient(t, handler)
	newSHA, err := client.Put(context.Background(), []byte("x"), "mensagem", "sha-old")

	require.NoError(t, err)
	assert.Equal(t, "sha-updated", newSHA)
}

func TestPut_ConflictMapsToSentinel(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "baseaud.csv does not match sha-stale",
		})
	})

	client := newTestClient(t, handler)
	_, err := client.Put(context.Background(), []byte("x"), "mensagem", "sha-stale")

	assert.ErrorIs(t, err, driven.ErrRevisionConflict)
}

func TestPut_OtherFailureIsNotConflict(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{"message": "Resource not accessible"})
	})

	client := newTestClient(t, handler)
	_, err := client.Put(context.Background(), []byte("x"), "mensagem", "sha-old")

	require.Error(t, err)
	assert.NotErrorIs(t, err, driven.ErrRevisionConflict)
}
