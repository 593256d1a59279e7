package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"github.com/skyduel/skyduel/arena"
	"github.com/skyduel/skyduel/server"
	"github.com/skyduel/skyduel/storage"
)

type ServerTestSuite struct {
	suite.Suite

	app *fiber.App
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	a := arena.New(arena.Config{Width: 960, Height: 540}, storage.NewNop())
	srv, err := server.New(a, storage.NewNop())
	s.Require().NoError(err)
	s.app = srv.App()
}

func (s *ServerTestSuite) post(path string, body any) *http.Response {
	bz, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(bz))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	res, err := s.app.Test(req)
	s.Require().NoError(err)
	return res
}

func (s *ServerTestSuite) get(path string) *http.Response {
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	res, err := s.app.Test(req)
	s.Require().NoError(err)
	return res
}

func (s *ServerTestSuite) decode(res *http.Response, into any) {
	bz, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(bz, into))
}

func (s *ServerTestSuite) errorTag(res *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	s.decode(res, &body)
	return body.Error
}

type joinBody struct {
	OK      bool   `json:"ok"`
	Sid     string `json:"sid"`
	Room    string `json:"room"`
	Nick    string `json:"nick"`
	Players int    `json:"players"`
}

func (s *ServerTestSuite) join(room, nick string) joinBody {
	res := s.post("/join", map[string]string{"room": room, "nick": nick})
	s.Require().Equal(fiber.StatusOK, res.StatusCode)
	var body joinBody
	s.decode(res, &body)
	s.Require().True(body.OK)
	s.Require().NotEmpty(body.Sid)
	return body
}

func (s *ServerTestSuite) send(room, sid string, payload map[string]any) *http.Response {
	return s.post("/send", map[string]any{"room": room, "sid": sid, "payload": payload})
}

func (s *ServerTestSuite) TestJoinCapacityAndNickConflict() {
	a := s.join("r1", "A")
	s.Equal(1, a.Players)
	b := s.join("r1", "B")
	s.Equal(2, b.Players)

	res := s.post("/join", map[string]string{"room": "r1", "nick": "C"})
	s.Equal(fiber.StatusConflict, res.StatusCode)
	s.Equal("room_full", s.errorTag(res))

	res = s.post("/join", map[string]string{"room": "r2", "nick": "A"})
	s.Equal(fiber.StatusOK, res.StatusCode)

	res = s.post("/join", map[string]string{"room": "r2", "nick": "A"})
	s.Equal(fiber.StatusConflict, res.StatusCode)
	s.Equal("nick_in_use", s.errorTag(res))
}

func (s *ServerTestSuite) TestStateIsCorrectedAndDelivered() {
	a := s.join("r1", "A")
	b := s.join("r1", "B")

	res := s.send("r1", a.Sid, map[string]any{"type": "state", "x": 1000.0, "y": -50.0, "seq": 1})
	s.Require().Equal(fiber.StatusOK, res.StatusCode)

	var sendBody struct {
		OK  bool `json:"ok"`
		Ack struct {
			Type      string  `json:"type"`
			Seq       int64   `json:"seq"`
			X         float64 `json:"x"`
			Y         float64 `json:"y"`
			Corrected bool    `json:"corrected"`
		} `json:"ack"`
	}
	s.decode(res, &sendBody)
	s.True(sendBody.OK)
	s.Equal("state_ack", sendBody.Ack.Type)
	s.Equal(int64(1), sendBody.Ack.Seq)
	s.Equal(940.0, sendBody.Ack.X)
	s.Equal(0.0, sendBody.Ack.Y)
	s.True(sendBody.Ack.Corrected)

	res = s.get(fmt.Sprintf("/poll?room=r1&sid=%s", b.Sid))
	s.Require().Equal(fiber.StatusOK, res.StatusCode)
	var pollBody struct {
		OK     bool `json:"ok"`
		Events []struct {
			Type string  `json:"type"`
			X    float64 `json:"x"`
			Y    float64 `json:"y"`
			Nick string  `json:"nick"`
			Sid  string  `json:"sid"`
		} `json:"events"`
	}
	s.decode(res, &pollBody)
	s.Require().Len(pollBody.Events, 1)
	s.Equal("state", pollBody.Events[0].Type)
	s.Equal(940.0, pollBody.Events[0].X)
	s.Equal("A", pollBody.Events[0].Nick)
	s.Equal(a.Sid, pollBody.Events[0].Sid)

	// Queue drained: next poll is empty.
	res = s.get(fmt.Sprintf("/poll?room=r1&sid=%s", b.Sid))
	s.decode(res, &pollBody)
	s.Len(pollBody.Events, 0)
}

func (s *ServerTestSuite) TestShotOriginRejected() {
	a := s.join("r1", "A")
	s.join("r1", "B")

	res := s.send("r1", a.Sid, map[string]any{"type": "state", "x": 100.0, "y": 100.0, "seq": 1})
	s.Require().Equal(fiber.StatusOK, res.StatusCode)

	res = s.send("r1", a.Sid, map[string]any{"type": "shot", "x": 500.0, "y": 500.0, "vx": 1.0, "vy": 0.0})
	s.Equal(fiber.StatusUnprocessableEntity, res.StatusCode)
	s.Equal("invalid_shot_origin", s.errorTag(res))
}

func (s *ServerTestSuite) TestRejoinKeepsSessionID() {
	a := s.join("r1", "A")

	res := s.post("/rejoin", map[string]string{"room": "r1", "nick": "A"})
	s.Require().Equal(fiber.StatusOK, res.StatusCode)
	var body joinBody
	s.decode(res, &body)
	s.Equal(a.Sid, body.Sid)

	res = s.post("/rejoin", map[string]string{"room": "r1", "nick": "Z"})
	s.Equal(fiber.StatusNotFound, res.StatusCode)
	s.Equal("session_not_found", s.errorTag(res))
}

func (s *ServerTestSuite) TestSendErrors() {
	a := s.join("r1", "A")

	res := s.send("r1", "bogus-sid", map[string]any{"type": "ping"})
	s.Equal(fiber.StatusNotFound, res.StatusCode)
	s.Equal("session_not_found", s.errorTag(res))

	res = s.send("r1", a.Sid, map[string]any{"type": "warp"})
	s.Equal(fiber.StatusUnprocessableEntity, res.StatusCode)
	s.Equal("invalid_payload", s.errorTag(res))

	req := httptest.NewRequest(fiber.MethodPost, "/send", bytes.NewReader([]byte("{nope")))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	raw, err := s.app.Test(req)
	s.Require().NoError(err)
	s.Equal(fiber.StatusBadRequest, raw.StatusCode)
	s.Equal("bad_request", s.errorTag(raw))
}

func (s *ServerTestSuite) TestPollUnknownSession() {
	res := s.get("/poll?room=r1&sid=nope")
	s.Equal(fiber.StatusNotFound, res.StatusCode)
	s.Equal("session_not_found", s.errorTag(res))
}

func (s *ServerTestSuite) TestStatusAndHealth() {
	s.join("r1", "A")
	s.join("r1", "B")

	res := s.get("/status?room=r1")
	s.Require().Equal(fiber.StatusOK, res.StatusCode)
	var status struct {
		OK      bool  `json:"ok"`
		Players int   `json:"players"`
		StaleMs int64 `json:"staleMs"`
	}
	s.decode(res, &status)
	s.True(status.OK)
	s.Equal(2, status.Players)

	res = s.get("/health")
	s.Require().Equal(fiber.StatusOK, res.StatusCode)
	var health struct {
		Status   string `json:"status"`
		UptimeMs int64  `json:"uptimeMs"`
	}
	s.decode(res, &health)
	s.Equal("ok", health.Status)
}
