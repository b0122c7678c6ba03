package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/magefree/goldfish-go/internal/config"
	"github.com/magefree/goldfish-go/internal/montecarlo"
)

// RunPath is the WebSocket endpoint that streams a run.
const RunPath = "/ws/run"

const (
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// WebSocket message types.
const (
	MessageProgress = "progress"
	MessageResult   = "result"
	MessageError    = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is every server-to-client frame.
type WSMessage struct {
	Type  string `json:"type"`
	RunID string `json:"run_id,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Progress is the payload of a progress message.
type Progress struct {
	Games     uint64               `json:"games"`
	Histogram montecarlo.Histogram `json:"histogram"`
}

// NewWebSocketHandler serves RunPath: the client sends one RunRequest as
// JSON, then receives progress messages and a final result or error. Closing
// the connection cancels the run.
func NewWebSocketHandler(runner *Runner, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(RunPath, func(w http.ResponseWriter, r *http.Request) {
		serveRun(runner, logger, w, r)
	})
	return mux
}

func serveRun(runner *Runner, logger *zap.Logger, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var req RunRequest
	if err := conn.ReadJSON(&req); err != nil {
		writeMessage(conn, logger, WSMessage{Type: MessageError, Error: "malformed run request: " + err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Any read error, including a close frame, ends the run.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	result, err := runner.Run(ctx, req, func(runID uuid.UUID, snapshot montecarlo.Histogram) {
		writeMessage(conn, logger, WSMessage{
			Type:  MessageProgress,
			RunID: runID.String(),
			Data:  Progress{Games: snapshot.Total(), Histogram: snapshot},
		})
	})
	if err != nil {
		logger.Warn("websocket run failed", zap.Error(err))
		writeMessage(conn, logger, WSMessage{Type: MessageError, Error: err.Error()})
		return
	}

	writeMessage(conn, logger, WSMessage{Type: MessageResult, RunID: result.RunID.String(), Data: result})
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run finished"))
}

func writeMessage(conn *websocket.Conn, logger *zap.Logger, msg WSMessage) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		logger.Debug("websocket write failed", zap.String("type", msg.Type), zap.Error(err))
	}
}

// StartWebSocketServer serves the WebSocket endpoint until ctx is cancelled.
func StartWebSocketServer(ctx context.Context, cfg config.WebSocketConfig, runner *Runner, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           NewWebSocketHandler(runner, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("websocket server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting WebSocket server", zap.String("address", cfg.Address), zap.String("path", RunPath))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
