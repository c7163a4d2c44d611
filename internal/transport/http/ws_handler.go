package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"coursebank-service/internal/app"
	"coursebank-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler bridges the browser client to the bank, quiz and challenge
// use cases over a single websocket.
type WSHandler struct {
	bank        *app.BankService
	quiz        *app.QuizEngine
	challenge   *app.ChallengeEngine
	notes       *app.NotesService
	leaderboard *app.LeaderboardService
	notifier    *app.Notifier
	baseURL     string
	upgrader    websocket.Upgrader
}

func NewWSHandler(bank *app.BankService, quiz *app.QuizEngine, challenge *app.ChallengeEngine,
	notes *app.NotesService, leaderboard *app.LeaderboardService, notifier *app.Notifier, baseURL string) *WSHandler {
	return &WSHandler{
		bank:        bank,
		quiz:        quiz,
		challenge:   challenge,
		notes:       notes,
		leaderboard: leaderboard,
		notifier:    notifier,
		baseURL:     baseURL,
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

type filterPayload struct {
	Unit  string `json:"unit"`
	Query string `json:"query"`
}

type addQuestionPayload struct {
	Unit          string            `json:"unit"`
	Scenario      string            `json:"scenario"`
	QuestionText  string            `json:"questionText"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	Explanation   string            `json:"explanation"`
}

type idPayload struct {
	ID int64 `json:"id"`
}

type quizStartPayload struct {
	Units []string `json:"units"`
	Count int      `json:"count"`
}

type quizAnswerPayload struct {
	QuestionID int64  `json:"questionId"`
	Choice     string `json:"choice"`
}

type challengeStartPayload struct {
	Username string `json:"username"`
}

type challengeAnswerPayload struct {
	Choice string `json:"choice"`
}

type notePayload struct {
	QuestionID int64  `json:"questionId"`
	Text       string `json:"text"`
}

type bankPayload struct {
	Questions     []domain.Question `json:"questions"`
	Counts        map[string]int    `json:"counts"`
	PendingDelete int64             `json:"pendingDelete"`
}

type shareLinkPayload struct {
	QuestionID int64  `json:"questionId"`
	URL        string `json:"url"`
}

// ServeWS upgrades the request and wires the connection into the use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	toasts, cancelToasts := h.notifier.Subscribe()
	defer cancelToasts()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	toastsDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(toastsDone)
		for {
			select {
			case toast, ok := <-toasts:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "toast", Payload: toast}:
				case <-writerDone:
					return
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	// Initial snapshot so a fresh client can render immediately.
	send <- h.bankMessage(domain.UnitAll, "")
	send <- outboundMessage[any]{Type: "leaderboard", Payload: h.leaderboard.Top()}
	send <- outboundMessage[any]{Type: "notes", Payload: h.notes.All()}
	send <- outboundMessage[any]{Type: "quizState", Payload: h.quiz.State()}
	send <- outboundMessage[any]{Type: "challengeState", Payload: h.challenge.State()}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		for _, msg := range h.dispatch(r, inbound) {
			select {
			case send <- msg:
			case <-writerDone:
			}
		}
	}

	close(closeSignals)
	<-toastsDone
	close(send)
	<-writerDone
}

// dispatch handles one inbound message and returns the outbound replies.
func (h *WSHandler) dispatch(r *http.Request, inbound inboundMessage) []outboundMessage[any] {
	switch inbound.Type {
	case "bank.list":
		return []outboundMessage[any]{h.bankMessage(domain.UnitAll, "")}

	case "bank.filter":
		var p filterPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return errReply("invalid filter payload")
		}
		unit := domain.Unit(p.Unit)
		if unit == "" {
			unit = domain.UnitAll
		}
		return []outboundMessage[any]{h.bankMessage(unit, p.Query)}

	case "bank.add":
		var p addQuestionPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return errReply("invalid question payload")
		}
		options := make(map[domain.OptionKey]string, len(p.Options))
		for key, text := range p.Options {
			options[domain.OptionKey(key)] = text
		}
		_, err := h.bank.Add(domain.Question{
			Unit:          domain.Unit(p.Unit),
			Scenario:      p.Scenario,
			Text:          p.QuestionText,
			Options:       options,
			CorrectAnswer: domain.OptionKey(p.CorrectAnswer),
			Explanation:   p.Explanation,
		})
		if err != nil {
			return errReply(err.Error())
		}
		return []outboundMessage[any]{h.bankMessage(domain.UnitAll, "")}

	case "bank.stageDelete":
		var p idPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return errReply("invalid delete payload")
		}
		if err := h.bank.StageDelete(p.ID); err != nil {
			return errReply(err.Error())
		}
		return []outboundMessage[any]{h.bankMessage(domain.UnitAll, "")}

	case "bank.confirmDelete":
		if _, err := h.bank.ConfirmDelete(); err != nil {
			return errReply(err.Error())
		}
		return []outboundMessage[any]{h.bankMessage(domain.UnitAll, "")}

	case "bank.cancelDelete":
		h.bank.CancelDelete()
		return []outboundMessage[any]{h.bankMessage(domain.UnitAll, "")}

	case "quiz.start":
		var p quizStartPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return errReply("invalid quiz payload")
		}
		units := make([]domain.Unit, 0, len(p.Units))
		for _, u := range p.Units {
			units = append(units, domain.Unit(u))
		}
		state, err := h.quiz.Start(units, p.Count)
		if err != nil {
			return errReply(err.Error())
		}
		return []outboundMessage[any]{{Type: "quizState", Payload: state}}

	case "quiz.answer":
		var p quizAnswerPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return errReply("invalid answer payload")
		}
		if err := h.quiz.Answer(p.QuestionID, domain.OptionKey(p.Choice)); err != nil {
			return errReply(err.Error())
		}
		return []outboundMessage[any]{{Type: "quizState", Payload: h.quiz.State()}}

	case "quiz.submit":
		result, err := h.quiz.Submit()
		if err != nil {
			return errReply(err.Error())
		}
		return []outboundMessage[any]{
			{Type: "quizState", Payload: h.quiz.State()},
			{Type: "quizResult", Payload: result},
		}

	case "quiz.reset":
		h.quiz.Reset()
		return []outboundMessage[any]{{Type: "quizState", Payload: h.quiz.State()}}

	case "challenge.start":
		var p challengeStartPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return errReply("invalid challenge payload")
		}
		state, err := h.challenge.Start(p.Username)
		if err != nil {
			return errReply(err.Error())
		}
		return []outboundMessage[any]{{Type: "challengeState", Payload: state}}

	case "challenge.answer":
		var p challengeAnswerPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return errReply("invalid answer payload")
		}
		state, err := h.challenge.Answer(domain.OptionKey(p.Choice))
		if err != nil {
			return errReply(err.Error())
		}
		replies := []outboundMessage[any]{{Type: "challengeState", Payload: state}}
		if state.Finished {
			replies = append(replies, outboundMessage[any]{Type: "leaderboard", Payload: h.leaderboard.Top()})
		}
		return replies

	case "challenge.state":
		// Clients poll while the countdown runs.
		return []outboundMessage[any]{{Type: "challengeState", Payload: h.challenge.State()}}

	case "challenge.exit":
		h.challenge.Exit()
		return []outboundMessage[any]{{Type: "challengeState", Payload: h.challenge.State()}}

	case "notes.set":
		var p notePayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return errReply("invalid note payload")
		}
		h.notes.Set(r.Context(), p.QuestionID, p.Text)
		return []outboundMessage[any]{{Type: "notes", Payload: h.notes.All()}}

	case "notes.get":
		return []outboundMessage[any]{{Type: "notes", Payload: h.notes.All()}}

	case "leaderboard.get":
		return []outboundMessage[any]{{Type: "leaderboard", Payload: h.leaderboard.Top()}}

	case "share":
		var p idPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return errReply("invalid share payload")
		}
		if _, err := h.bank.Get(p.ID); err != nil {
			return errReply(err.Error())
		}
		return []outboundMessage[any]{{Type: "shareLink", Payload: shareLinkPayload{
			QuestionID: p.ID,
			URL:        fmt.Sprintf("%s/#q-%d", h.baseURL, p.ID),
		}}}

	default:
		return errReply("unsupported message type")
	}
}

// bankMessage assembles the bank snapshot with sidebar badge counts.
func (h *WSHandler) bankMessage(unit domain.Unit, query string) outboundMessage[any] {
	counts := make(map[string]int, len(domain.Units())+1)
	counts[string(domain.UnitAll)] = len(h.bank.List())
	for _, u := range domain.Units() {
		counts[string(u)] = h.bank.CountByUnit(u)
	}
	return outboundMessage[any]{Type: "bank", Payload: bankPayload{
		Questions:     h.bank.Filter(unit, query),
		Counts:        counts,
		PendingDelete: h.bank.PendingDelete(),
	}}
}

func errReply(message string) []outboundMessage[any] {
	return []outboundMessage[any]{{Type: "error", Payload: errorPayload{Message: message}}}
}
