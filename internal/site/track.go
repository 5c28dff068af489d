package site

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zenifieduk/techhub/internal/tracker"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 << 10
)

// Message types exchanged on the tracking websocket.
const (
	msgMounted   = "mounted"
	msgIntersect = "intersect"
	msgScroll    = "scroll"
	msgNavigate  = "navigate"

	msgHello    = "hello"
	msgActive   = "active"
	msgScrollTo = "scroll_to"
	msgError    = "error"
)

// clientMessage is a report from the article page.
type clientMessage struct {
	Type     string                 `json:"type"`
	Anchors  []string               `json:"anchors,omitempty"`
	Entries  []tracker.Intersection `json:"entries,omitempty"`
	Headings []tracker.Position     `json:"headings,omitempty"`
	ID       string                 `json:"id,omitempty"`
}

// serverMessage is an instruction for the article page.
type serverMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	ID        string `json:"id,omitempty"`
	Message   string `json:"message,omitempty"`
}

var errConnClosed = errors.New("connection closed")

// event converts a client report to a tracker event.
func (m clientMessage) event() (tracker.Event, error) {
	switch m.Type {
	case msgMounted:
		return tracker.Event{Kind: tracker.EventMounted, Anchors: m.Anchors}, nil
	case msgIntersect:
		return tracker.Event{Kind: tracker.EventIntersect, Intersections: m.Entries}, nil
	case msgScroll:
		return tracker.Event{Kind: tracker.EventScroll, Positions: m.Headings}, nil
	case msgNavigate:
		return tracker.Event{Kind: tracker.EventNavigate, Target: m.ID}, nil
	default:
		return tracker.Event{}, errors.New("unknown message type: " + m.Type)
	}
}

// handleTrack runs one tracking session for an article view. The page reports
// heading visibility and positions; the session answers with the active section
// and scroll targets.
func (s *Site) handleTrack(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, chi.URLParam(r, "slug"))
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	sess := tracker.NewSession(a.TOC, s.tracking, s.logger)
	log := s.logger.With(zap.String("session", sess.ID), zap.String("slug", a.Slug))
	log.Debug("Tracking session opened")

	g, ctx := errgroup.WithContext(r.Context())
	replies := make(chan serverMessage, 4)

	g.Go(func() error {
		return sess.Run(ctx)
	})
	g.Go(func() error {
		return s.readLoop(ctx, conn, sess, replies)
	})
	g.Go(func() error {
		return s.writeLoop(ctx, conn, sess, replies)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errConnClosed) {
		log.Warn("Tracking session ended", zap.Error(err))
		return
	}
	log.Debug("Tracking session closed")
}

// readLoop decodes page reports into session events. Malformed reports are
// answered with an error message and otherwise ignored.
func (s *Site) readLoop(ctx context.Context, conn *websocket.Conn, sess *tracker.Session, replies chan<- serverMessage) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("Websocket read failed", zap.Error(err))
			}
			return errConnClosed
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if !reply(ctx, replies, serverMessage{Type: msgError, Message: "invalid message format"}) {
				return nil
			}
			continue
		}
		ev, err := msg.event()
		if err != nil {
			if !reply(ctx, replies, serverMessage{Type: msgError, Message: err.Error()}) {
				return nil
			}
			continue
		}
		if err := sess.Send(ctx, ev); err != nil {
			return nil
		}
	}
}

// writeLoop is the only writer of data frames on conn. It closes conn on exit so
// a blocked readLoop returns.
func (s *Site) writeLoop(ctx context.Context, conn *websocket.Conn, sess *tracker.Session, replies <-chan serverMessage) error {
	defer conn.Close()

	if err := write(conn, serverMessage{Type: msgHello, SessionID: sess.ID}); err != nil {
		return errConnClosed
	}

	updates := sess.Updates()
	for {
		var msg serverMessage
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait))
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			msg = serverMessage{Type: msgActive, ID: u.ID}
			if u.Kind == tracker.UpdateScrollTo {
				msg.Type = msgScrollTo
			}
		case msg = <-replies:
		}
		if err := write(conn, msg); err != nil {
			return errConnClosed
		}
	}
}

func write(conn *websocket.Conn, msg serverMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func reply(ctx context.Context, replies chan<- serverMessage, msg serverMessage) bool {
	select {
	case replies <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}
