package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gigiceria-quiz/internal/app"
	"gigiceria-quiz/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler plays quiz sessions over WebSocket: one connection, one
// session. The server owns the countdown ticker; the client only selects
// answers and advances.
type WSHandler struct {
	questions   []domain.Question
	cfg         domain.QuizConfig
	scoreLog    app.ScoreLog
	profiles    app.ProfileStore
	leaderboard *app.Leaderboard
	upgrader    websocket.Upgrader
}

func NewWSHandler(questions []domain.Question, cfg domain.QuizConfig, scoreLog app.ScoreLog, profiles app.ProfileStore, leaderboard *app.Leaderboard) *WSHandler {
	return &WSHandler{
		questions:   questions,
		cfg:         cfg,
		scoreLog:    scoreLog,
		profiles:    profiles,
		leaderboard: leaderboard,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Option string `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request, starts a session for the named player, and
// streams snapshots until the session finishes or the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerName := r.URL.Query().Get("name")
	if playerName == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	engine, err := app.NewEngine(h.questions, h.cfg, h.scoreLog, h.profiles)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	if err := engine.Start(playerName); err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	updates, cancel := engine.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	// countdown owned by the server, one tick per second
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if warn := engine.Tick(r.Context()); warn != nil {
					log.Printf("finalize warning: %v", warn)
				}
				if engine.Snapshot().Status == app.StatusFinished {
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		finished := false
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "snapshot", Payload: snap}:
				case <-closeSignals:
					return
				}
				if snap.Status == app.StatusFinished && !finished {
					finished = true
					h.sendResult(r.Context(), engine, send, closeSignals)
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			engine.SelectAnswer(payload.Option)
		case "next":
			if warn := engine.Advance(r.Context()); warn != nil {
				log.Printf("finalize warning: %v", warn)
			}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

func (h *WSHandler) sendResult(ctx context.Context, engine *app.Engine, send chan<- outboundMessage[any], closeSignals <-chan struct{}) {
	result, ok := engine.Result()
	if !ok {
		return
	}
	select {
	case send <- outboundMessage[any]{Type: "result", Payload: result}:
	case <-closeSignals:
		return
	}
	select {
	case send <- outboundMessage[any]{Type: "leaderboard", Payload: h.leaderboard.AllRanked(ctx, 10)}:
	case <-closeSignals:
	}
}
