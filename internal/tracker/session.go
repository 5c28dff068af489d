package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenifieduk/techhub/internal/toc"
)

// ErrClosed is returned by Send once the session has stopped.
var ErrClosed = errors.New("tracker session closed")

// EventKind identifies a browser report.
type EventKind string

const (
	EventMounted   EventKind = "mounted"
	EventIntersect EventKind = "intersect"
	EventScroll    EventKind = "scroll"
	EventNavigate  EventKind = "navigate"
)

// Event is one report from the page.
type Event struct {
	Kind          EventKind
	Anchors       []string
	Intersections []Intersection
	Positions     []Position
	Target        string
}

// UpdateKind identifies an instruction for the page.
type UpdateKind string

const (
	// UpdateActive highlights a ToC entry.
	UpdateActive UpdateKind = "active"
	// UpdateScrollTo smooth-scrolls a heading to the top of the viewport.
	UpdateScrollTo UpdateKind = "scroll_to"
)

// Update is one instruction for the page.
type Update struct {
	Kind UpdateKind
	ID   string
}

// Session runs a Tracker on its own goroutine. Events are applied in arrival order;
// scroll samples are throttled to one evaluation per frame, keeping only the latest.
// Active-section changes and navigation targets are published on Updates.
type Session struct {
	ID string

	tracker *Tracker
	frame   time.Duration
	logger  *zap.Logger

	events  chan Event
	updates chan Update
	done    chan struct{}
}

// NewSession creates a session for one article view. Call Run to start it.
func NewSession(entries []toc.Entry, cfg Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	frame := cfg.FrameInterval
	if frame <= 0 {
		frame = DefaultConfig().FrameInterval
	}
	id := uuid.New().String()
	return &Session{
		ID:      id,
		tracker: New(entries, cfg),
		frame:   frame,
		logger:  logger.With(zap.String("session", id)),
		events:  make(chan Event, 32),
		updates: make(chan Update, 16),
		done:    make(chan struct{}),
	}
}

// Updates returns the channel of page instructions. It is closed when Run returns.
func (s *Session) Updates() <-chan Update { return s.updates }

// Send queues an event. It blocks while the queue is full.
func (s *Session) Send(ctx context.Context, ev Event) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.updates)
	defer close(s.done)

	frame := time.NewTimer(s.frame)
	frame.Stop()
	defer frame.Stop()

	var (
		pending []Position
		ticking bool
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Tracker session stopped", zap.String("active", s.tracker.Active()))
			return nil

		case ev := <-s.events:
			switch ev.Kind {
			case EventMounted:
				ok := s.tracker.Mount(ev.Anchors)
				pending, ticking = nil, false
				frame.Stop()
				s.logger.Debug("Content mounted", zap.Int("anchors", len(ev.Anchors)), zap.Bool("tracking", ok))

			case EventIntersect:
				if id, changed := s.tracker.Intersect(ev.Intersections); changed {
					if !s.publish(ctx, Update{Kind: UpdateActive, ID: id}) {
						return nil
					}
				}

			case EventScroll:
				pending = ev.Positions
				if !ticking {
					ticking = true
					frame.Reset(s.frame)
				}

			case EventNavigate:
				if id, ok := s.tracker.Navigate(ev.Target); ok {
					if !s.publish(ctx, Update{Kind: UpdateScrollTo, ID: id}) {
						return nil
					}
				}

			default:
				s.logger.Debug("Ignoring unknown event", zap.String("kind", string(ev.Kind)))
			}

		case <-frame.C:
			ticking = false
			positions := pending
			pending = nil
			if id, changed := s.tracker.Scroll(positions); changed {
				if !s.publish(ctx, Update{Kind: UpdateActive, ID: id}) {
					return nil
				}
			}
		}
	}
}

func (s *Session) publish(ctx context.Context, u Update) bool {
	select {
	case s.updates <- u:
		return true
	case <-ctx.Done():
		return false
	}
}
