package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quiz-trainer/internal/domain"
	"quiz-trainer/internal/quiz"
)

// WSHandler drives one quiz session per websocket connection. The session is
// synchronous, so every inbound message is answered before the next is read
// and no write pump is needed.
type WSHandler struct {
	banks    quiz.BankRepository
	history  quiz.HistoryRecorder
	upgrader websocket.Upgrader
}

func NewWSHandler(banks quiz.BankRepository, history quiz.HistoryRecorder) *WSHandler {
	return &WSHandler{
		banks:   banks,
		history: history,
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

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type startPayload struct {
	Bank string `json:"bank"`
}

type selectPayload struct {
	Index int `json:"index"`
}

type notePayload struct {
	Text string `json:"text"`
}

type questionView struct {
	Number       int                  `json:"number"`
	Total        int                  `json:"total"`
	QuestionType domain.QuestionType  `json:"questionType"`
	Prompt       string               `json:"prompt"`
	Options      []string             `json:"options,omitempty"`
	Statements   []string             `json:"statements,omitempty"`
	Layout       *quiz.DragDropLayout `json:"layout,omitempty"`
	Selection    any                  `json:"selection"`
	Note         string               `json:"note,omitempty"`
	RetryMode    bool                 `json:"retryMode"`
}

type resultView struct {
	domain.QuizResult
	AttemptID string `json:"attemptId,omitempty"`
}

// ServeWS upgrades the request and runs the session message loop.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := quiz.NewSession(h.banks, h.history)
	ctx := r.Context()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid start payload")
				continue
			}
			if err := session.Start(ctx, payload.Bank); err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.sendQuestion(conn, session)
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid select payload")
				continue
			}
			session.SelectOption(payload.Index)
			h.sendQuestion(conn, session)
		case "selection":
			selection, err := decodeSelection(session.CurrentType(), inbound.Payload)
			if err != nil {
				h.sendError(conn, "invalid selection payload")
				continue
			}
			session.SetSelection(selection)
			h.sendQuestion(conn, session)
		case "note":
			var payload notePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid note payload")
				continue
			}
			session.SetNote(payload.Text)
		case "advance":
			if !session.Advance(ctx) {
				h.sendError(conn, "select an answer first")
				continue
			}
			if session.State() == quiz.StateCompleted {
				h.sendResult(conn, session)
			} else {
				h.sendQuestion(conn, session)
			}
		case "retry":
			if !session.RetryWrongAnswers() {
				h.sendError(conn, "nothing to retry")
				continue
			}
			h.sendQuestion(conn, session)
		case "restart":
			session.Restart()
			_ = conn.WriteJSON(outboundMessage[struct{}]{Type: "restarted"})
		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

func (h *WSHandler) sendQuestion(conn *websocket.Conn, session *quiz.Session) {
	q, ok := session.Current()
	if !ok {
		h.sendError(conn, "no current question")
		return
	}
	tag := session.CurrentType()
	number, total := session.Progress()
	view := questionView{
		Number:       number,
		Total:        total,
		QuestionType: tag,
		Prompt:       quiz.Prompt(q, tag),
		Options:      q.Options,
		Selection:    session.Selection(),
		Note:         session.Note(),
		RetryMode:    session.RetryMode(),
	}
	switch tag {
	case domain.YesNo:
		view.Statements = quiz.Statements(q)
	case domain.DragDrop:
		layout := quiz.Layout(q)
		view.Layout = &layout
	}
	_ = conn.WriteJSON(outboundMessage[questionView]{Type: "question", Payload: view})
}

func (h *WSHandler) sendResult(conn *websocket.Conn, session *quiz.Session) {
	result, _ := session.Result()
	view := resultView{QuizResult: result}
	if attempt, ok := session.Attempt(); ok {
		view.AttemptID = attempt.ID
	}
	_ = conn.WriteJSON(outboundMessage[resultView]{Type: "result", Payload: view})
}

func (h *WSHandler) sendError(conn *websocket.Conn, message string) {
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: message}})
}

// decodeSelection parses a raw selection into the shape the current variant
// expects, so the comparator never sees transport-level types.
func decodeSelection(tag domain.QuestionType, raw json.RawMessage) (any, error) {
	switch tag {
	case domain.YesNo:
		var slots domain.YesNoSelection
		if err := json.Unmarshal(raw, &slots); err != nil {
			return nil, err
		}
		return slots, nil
	case domain.DragDrop:
		var placements domain.DragDropSelection
		if err := json.Unmarshal(raw, &placements); err == nil {
			return placements, nil
		}
		var pairs []any
		if err := json.Unmarshal(raw, &pairs); err != nil {
			return nil, err
		}
		return pairs, nil
	default:
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, err
		}
		return value, nil
	}
}
