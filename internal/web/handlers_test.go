package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slpstats/replayd/internal/queryengine"
	"github.com/slpstats/replayd/internal/replay"
)

type stubReconstructor struct {
	snapshot *replay.Snapshot
	err      error

	gotMatchID string
	gotStart   int
	gotEnd     int
}

func (s *stubReconstructor) Reconstruct(ctx context.Context, matchID string, frameStart, frameEnd int) (*replay.Snapshot, error) {
	s.gotMatchID = matchID
	s.gotStart = frameStart
	s.gotEnd = frameEnd
	return s.snapshot, s.err
}

func newTestServer(stub *stubReconstructor) *Server {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewServer(stub, log, Config{AllowedOrigins: []string{"*"}})
}

func postReplay(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/replay", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestHandleReplaySuccess(t *testing.T) {
	stub := &stubReconstructor{snapshot: &replay.Snapshot{Frames: []replay.Frame{}}}
	server := newTestServer(stub)

	rec := postReplay(t, server, `{"matchId":"M1","frameStart":10,"frameEnd":12}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "M1", stub.gotMatchID)
	assert.Equal(t, 10, stub.gotStart)
	assert.Equal(t, 12, stub.gotEnd)

	var snapshot replay.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.NotNil(t, snapshot.Frames)
}

func TestHandleReplayValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing matchId", `{"frameStart":0,"frameEnd":1}`, "matchId is required"},
		{"missing frameStart", `{"matchId":"M1","frameEnd":1}`, "frameStart is required"},
		{"missing frameEnd", `{"matchId":"M1","frameStart":0}`, "frameEnd is required"},
		{"negative frameStart", `{"matchId":"M1","frameStart":-1,"frameEnd":1}`, "frameStart must be >= 0"},
		{"inverted range", `{"matchId":"M1","frameStart":5,"frameEnd":4}`, "frameEnd must be >= frameStart"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubReconstructor{snapshot: &replay.Snapshot{}}
			rec := postReplay(t, newTestServer(stub), tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.want, decodeError(t, rec))
			assert.Empty(t, stub.gotMatchID, "engine must not be reached on validation failure")
		})
	}
}

func TestHandleReplayZeroStartIsValid(t *testing.T) {
	stub := &stubReconstructor{snapshot: &replay.Snapshot{}}
	rec := postReplay(t, newTestServer(stub), `{"matchId":"M1","frameStart":0,"frameEnd":0}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleReplayMalformedBody(t *testing.T) {
	rec := postReplay(t, newTestServer(&stubReconstructor{}), `{"matchId"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReplayErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", replay.ErrMatchNotFound, http.StatusNotFound},
		{"timeout", queryengine.ErrWaitTimeout, http.StatusGatewayTimeout},
		{"execution failure", &queryengine.ExecutionError{State: queryengine.StateFailed, Reason: "boom"}, http.StatusBadGateway},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postReplay(t, newTestServer(&stubReconstructor{err: tc.err}), `{"matchId":"M1","frameStart":0,"frameEnd":1}`)
			assert.Equal(t, tc.code, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec))
		})
	}
}

func TestHandleReplayUnknownErrorIsOpaque(t *testing.T) {
	rec := postReplay(t, newTestServer(&stubReconstructor{err: errors.New("credentials leaked")}), `{"matchId":"M1","frameStart":0,"frameEnd":1}`)
	assert.Equal(t, "internal error", decodeError(t, rec))
}

func TestPreflightReturnsCORSHeaders(t *testing.T) {
	server := newTestServer(&stubReconstructor{})

	req := httptest.NewRequest(http.MethodOptions, "/replay", nil)
	req.Header.Set("Origin", "https://viewer.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Body.Bytes())
}

func TestCORSHeadersOnResponses(t *testing.T) {
	stub := &stubReconstructor{snapshot: &replay.Snapshot{}}
	server := newTestServer(stub)

	req := httptest.NewRequest(http.MethodPost, "/replay", strings.NewReader(`{"matchId":"M1","frameStart":0,"frameEnd":1}`))
	req.Header.Set("Origin", "https://viewer.example")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	server := newTestServer(&stubReconstructor{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
