package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vfx-cost/core/types"
	"vfx-cost/internal/errors"
	"vfx-cost/internal/metrics"
)

// maxFrameBytes bounds a single shot configuration frame
const maxFrameBytes = 64 << 10

// handleStream handles GET /ws/estimate. Every text frame carries a shot
// configuration and is answered with one estimate or error frame, so an
// editor can reprice on each change.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s.metrics.StreamOpened()
	defer s.metrics.StreamClosed()

	conn.SetReadLimit(maxFrameBytes)

	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("stream closed", zap.Error(err))
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		reply := s.streamReply(payload)
		data, err := json.Marshal(reply)
		if err != nil {
			s.logger.Error("marshal stream reply", zap.Error(err))
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (s *Server) streamReply(payload []byte) StreamMessage {
	start := time.Now()

	shot := types.DefaultShot()
	if err := json.Unmarshal(payload, &shot); err != nil {
		return s.streamError(errors.Wrap(errors.TypeInput, "invalid shot configuration", err))
	}

	resp, err := s.estimate(shot, false)
	if err != nil {
		return s.streamError(err)
	}
	s.metrics.RecordEstimate(metrics.SourceWebsocket, 1, time.Since(start))
	return StreamMessage{Type: "estimate", Estimate: resp}
}

func (s *Server) streamError(err error) StreamMessage {
	body, _ := errorBody(err)
	s.metrics.RecordEstimateError(body.Code)
	return StreamMessage{Type: "error", Error: &body}
}
