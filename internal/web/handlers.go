package web

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/slpstats/replayd/internal/queryengine"
	"github.com/slpstats/replayd/internal/replay"
)

type replayRequest struct {
	MatchID    string `json:"matchId"`
	FrameStart *int   `json:"frameStart"`
	FrameEnd   *int   `json:"frameEnd"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	var req replayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validate(req); msg != "" {
		s.writeError(w, http.StatusBadRequest, msg)
		return
	}

	snapshot, err := s.replays.Reconstruct(r.Context(), req.MatchID, *req.FrameStart, *req.FrameEnd)
	if err != nil {
		s.writeReconstructError(w, req, err)
		return
	}

	s.writeJSON(w, http.StatusOK, snapshot)
}

// validate returns a missing-field message, or empty when the request is
// well-formed. Pointer fields distinguish absent from zero.
func validate(req replayRequest) string {
	switch {
	case req.MatchID == "":
		return "matchId is required"
	case req.FrameStart == nil:
		return "frameStart is required"
	case req.FrameEnd == nil:
		return "frameEnd is required"
	case *req.FrameStart < 0:
		return "frameStart must be >= 0"
	case *req.FrameEnd < *req.FrameStart:
		return "frameEnd must be >= frameStart"
	}
	return ""
}

func (s *Server) writeReconstructError(w http.ResponseWriter, req replayRequest, err error) {
	log := s.log.WithFields(logrus.Fields{
		"matchId":    req.MatchID,
		"frameStart": *req.FrameStart,
		"frameEnd":   *req.FrameEnd,
	})

	var execErr *queryengine.ExecutionError
	switch {
	case errors.Is(err, replay.ErrMatchNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, queryengine.ErrWaitTimeout):
		log.WithError(err).Error("query execution timed out")
		s.writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &execErr):
		log.WithError(err).Error("query execution failed")
		s.writeError(w, http.StatusBadGateway, err.Error())
	default:
		log.WithError(err).Error("replay reconstruction failed")
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Error("failed to write response")
	}
}
