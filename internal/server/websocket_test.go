package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type received struct {
	Type  string          `json:"type"`
	RunID string          `json:"run_id"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	logger := zaptest.NewLogger(t)
	srv := httptest.NewServer(NewWebSocketHandler(NewRunner(testConfig(), nil, logger), logger))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + RunPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(30*time.Second)))
	return conn
}

func TestWebSocketStreamsProgressAndResult(t *testing.T) {
	conn := dial(t)
	require.NoError(t, conn.WriteJSON(RunRequest{Workers: 2, SimulationsPerWorker: 20, Seed: 8, ProgressEvery: 10}))

	var progress []Progress
	var final received
	for {
		var msg received
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == MessageProgress {
			var p Progress
			require.NoError(t, json.Unmarshal(msg.Data, &p))
			progress = append(progress, p)
			continue
		}
		final = msg
		break
	}

	require.Equal(t, MessageResult, final.Type, final.Error)
	require.Len(t, progress, 4)
	assert.Equal(t, uint64(10), progress[0].Games)
	assert.Equal(t, uint64(40), progress[3].Games)

	var result RunResult
	require.NoError(t, json.Unmarshal(final.Data, &result))
	assert.Equal(t, final.RunID, result.RunID.String())
	assert.Equal(t, int64(8), result.Seed)
	assert.Equal(t, uint64(40), result.Histogram.Total())
}

func TestWebSocketReportsInvalidRequest(t *testing.T) {
	conn := dial(t)
	require.NoError(t, conn.WriteJSON(RunRequest{Workers: 100}))

	var msg received
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageError, msg.Type)
	assert.Contains(t, msg.Error, "exceeds the limit")
}

func TestWebSocketRejectsMalformedJSON(t *testing.T) {
	conn := dial(t)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	var msg received
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageError, msg.Type)
	assert.Contains(t, msg.Error, "malformed run request")
}
