package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAssistant(t *testing.T, reply string) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/process":
			fmt.Fprintf(w, `{"response":%q}`, reply)
		case "/speech":
			fmt.Fprint(w, `{"text":"transcribed words"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	t.Setenv("ASSISTANT_URL", srv.URL)
}

func TestAssistantMessageRecordsExchange(t *testing.T) {
	r := setupServer(t)
	fakeAssistant(t, "drink some water")

	signup(t, r, "A", "a@x.com", "p1")
	token := login(t, r, "a@x.com", "p1")

	w := do(t, r, http.MethodPost, "/api/assistant/message", token, gin.H{"text": "I feel dizzy"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "drink some water", decode(t, w)["reply"])

	w = do(t, r, http.MethodGet, "/api/assistant/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	history := decodeList(t, w)
	require.Len(t, history, 1)
	assert.Equal(t, "I feel dizzy", history[0]["prompt"])
	assert.Equal(t, "drink some water", history[0]["reply"])
}

func TestAssistantMessageRequiresText(t *testing.T) {
	r := setupServer(t)
	fakeAssistant(t, "unused")

	signup(t, r, "A", "a@x.com", "p1")
	token := login(t, r, "a@x.com", "p1")

	for _, body := range []gin.H{{}, {"text": ""}, {"text": "   "}} {
		w := do(t, r, http.MethodPost, "/api/assistant/message", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v", body)
	}
}

func TestAssistantServiceFailureIsBadGateway(t *testing.T) {
	r := setupServer(t)
	t.Setenv("ASSISTANT_URL", "http://127.0.0.1:1")

	signup(t, r, "A", "a@x.com", "p1")
	token := login(t, r, "a@x.com", "p1")

	w := do(t, r, http.MethodPost, "/api/assistant/message", token, gin.H{"text": "hello"})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// A failed exchange is not recorded.
	w = do(t, r, http.MethodGet, "/api/assistant/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))
}

func TestAssistantSpeechRelaysTranscription(t *testing.T) {
	r := setupServer(t)
	fakeAssistant(t, "unused")

	signup(t, r, "A", "a@x.com", "p1")
	token := login(t, r, "a@x.com", "p1")

	req := httptest.NewRequest(http.MethodPost, "/api/assistant/speech", strings.NewReader("fake-audio"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"text":"transcribed words"}`, w.Body.String())
}

func TestAssistantHistoryIsOwnerScoped(t *testing.T) {
	r := setupServer(t)
	fakeAssistant(t, "ok")

	signup(t, r, "A", "a@x.com", "p1")
	signup(t, r, "B", "b@x.com", "p2")
	tokenA := login(t, r, "a@x.com", "p1")
	tokenB := login(t, r, "b@x.com", "p2")

	w := do(t, r, http.MethodPost, "/api/assistant/message", tokenA, gin.H{"text": "A's question"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/assistant/history", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))

	w = do(t, r, http.MethodGet, "/api/assistant/history", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	history := decodeList(t, w)
	require.Len(t, history, 1)
	id := uint(history[0]["id"].(float64))

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/assistant/history/%d", id), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/assistant/history/%d", id), tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAssistantWebSocketRelay(t *testing.T) {
	r := setupServer(t)
	fakeAssistant(t, "good morning")

	signup(t, r, "A", "a@x.com", "p1")
	token := login(t, r, "a@x.com", "p1")

	srv := httptest.NewServer(r)
	defer srv.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	header.Set("Origin", "http://localhost:3000")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/assistant/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	var welcome map[string]string
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "connected", welcome["type"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))

	var reply map[string]string
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "reply", reply["type"])
	assert.Equal(t, "good morning", reply["reply"])

	// The relayed exchange lands in the history like /message does.
	w := do(t, r, http.MethodGet, "/api/assistant/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	history := decodeList(t, w)
	require.Len(t, history, 1)
	assert.Equal(t, "hello", history[0]["prompt"])
	assert.Equal(t, "good morning", history[0]["reply"])
}

func TestAssistantWebSocketRejectsUnknownOrigin(t *testing.T) {
	r := setupServer(t)

	signup(t, r, "A", "a@x.com", "p1")
	token := login(t, r, "a@x.com", "p1")

	srv := httptest.NewServer(r)
	defer srv.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	header.Set("Origin", "http://evil.example.com")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/assistant/ws"

	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	if resp != nil {
		resp.Body.Close()
	}
}
