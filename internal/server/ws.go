package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/insajin/brandsnap/internal/brand"
	"github.com/insajin/brandsnap/internal/consultant"
	"github.com/insajin/brandsnap/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// SPA와 같은 오리진에서만 쓰이는 로컬 도구이므로 오리진 검사를 하지 않음
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest는 상담 소켓의 수신 메시지입니다.
type wsRequest struct {
	Type    string `json:"type"`
	Idea    string `json:"idea,omitempty"`
	Message string `json:"message,omitempty"`
}

// wsResponse는 상담 소켓의 송신 메시지입니다.
type wsResponse struct {
	Type  string            `json:"type"`
	Reply *consultant.Reply `json:"reply,omitempty"`
	Brand json.RawMessage   `json:"brand,omitempty"`
	Error string            `json:"error,omitempty"`
}

// handleConsultWS는 GET /ws/consult를 처리합니다.
// 연결마다 독립적인 상담 세션을 생성하고, start/chat/generate/reset
// 메시지를 처리합니다.
func (s *Server) handleConsultWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("WebSocket 업그레이드 실패")
		return
	}
	defer conn.Close()

	opts := []consultant.Option{
		consultant.WithMetrics(s.metrics),
		consultant.WithHistoryWindow(s.cfg.Generation.GetConsultHistoryTurns()),
	}
	if client := s.currentClient(); client != nil {
		opts = append(opts, consultant.WithChatClient(client))
	}
	cons := consultant.New(opts...)

	slog := logger.WithSessionID(cons.ID())
	slog.Info().Msg("상담 WebSocket 연결")

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn().Err(err).Msg("상담 WebSocket 비정상 종료")
			}
			return
		}

		resp := s.dispatchConsult(c, cons, req)
		if err := conn.WriteJSON(resp); err != nil {
			slog.Warn().Err(err).Msg("상담 WebSocket 응답 전송 실패")
			return
		}
	}
}

// dispatchConsult는 상담 메시지 한 건을 처리합니다.
func (s *Server) dispatchConsult(c *gin.Context, cons *consultant.Consultant, req wsRequest) wsResponse {
	switch req.Type {
	case "start":
		reply := cons.Start(req.Idea)
		return wsResponse{Type: "reply", Reply: &reply}

	case "chat":
		reply, err := cons.Chat(c.Request.Context(), req.Message)
		if err != nil {
			return wsResponse{Type: "error", Error: err.Error()}
		}
		return wsResponse{Type: "reply", Reply: &reply}

	case "generate":
		prompt := cons.SynthesizePrompt()
		if prompt == "" {
			prompt = req.Idea
		}
		rec, err := s.session.Generate(c.Request.Context(), prompt)
		if err != nil {
			return wsResponse{Type: "error", Error: err.Error()}
		}
		data, err := brand.ExportJSON(rec)
		if err != nil {
			return wsResponse{Type: "error", Error: err.Error()}
		}
		return wsResponse{Type: "brand", Brand: data}

	case "reset":
		cons.Reset()
		return wsResponse{Type: "ok"}

	default:
		return wsResponse{Type: "error", Error: "알 수 없는 메시지 타입입니다: " + req.Type}
	}
}
