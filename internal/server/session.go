package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/dataset"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/playback"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

const (
	outboxSize   = 64
	writeTimeout = 5 * time.Second
)

// Command is a client request. Only the fields relevant to Type are read.
type Command struct {
	Type         string `json:"type"`
	Mode         string `json:"mode,omitempty"`
	Algorithm    string `json:"algorithm,omitempty"`
	Contender    string `json:"contender,omitempty"`
	Direction    string `json:"direction,omitempty"`
	Size         int    `json:"size,omitempty"`
	Distribution string `json:"distribution,omitempty"`
	Values       []int  `json:"values,omitempty"`
	Speed        int    `json:"speed,omitempty"`
}

// Message is sent to the client: a hello on connect, then frames and
// errors.
type Message struct {
	Type    string        `json:"type"`
	Session string        `json:"session,omitempty"`
	Frame   *replay.Frame `json:"frame,omitempty"`
	Speed   int           `json:"speed,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type session struct {
	id   string
	conn *websocket.Conn
	ctrl *playback.Controller
	out  chan Message
}

func newSession(conn *websocket.Conn, ctrl *playback.Controller) *session {
	return &session{
		id:   uuid.NewString(),
		conn: conn,
		ctrl: ctrl,
		out:  make(chan Message, outboxSize),
	}
}

// run owns the connection until the client leaves or ctx ends. Reads
// happen here, writes in a dedicated goroutine, and the controller is
// driven by its own Serve goroutine.
func (s *session) run(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	logger := log.WithField("session", s.id)
	logger.Info("server: session opened")

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		defer cancel()
		s.writeLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		if err := s.ctrl.Serve(ctx, s.emitFrame(ctx)); err != nil && ctx.Err() == nil {
			logger.WithError(err).Warn("server: playback stopped")
		}
	}()
	go func() {
		defer wg.Done()
		<-ctx.Done()
		s.conn.Close()
	}()

	s.emit(ctx, Message{Type: "hello", Session: s.id})
	s.ctrl.Send(ctx, func(*playback.Controller) {})

	for {
		var cmd Command
		if err := s.conn.ReadJSON(&cmd); err != nil {
			if ctx.Err() == nil {
				logger.WithError(err).Debug("server: read ended")
			}
			break
		}
		logger.WithField("command", cmd.Type).Debug("server: command received")
		if err := s.ctrl.Send(ctx, s.command(ctx, cmd)); err != nil {
			break
		}
	}

	cancel()
	wg.Wait()
	logger.Info("server: session closed")
}

func (s *session) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.out:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteJSON(msg); err != nil {
				log.WithField("session", s.id).WithError(err).Debug("server: write failed")
				return
			}
		}
	}
}

func (s *session) emit(ctx context.Context, msg Message) {
	select {
	case s.out <- msg:
	case <-ctx.Done():
	}
}

func (s *session) emitFrame(ctx context.Context) func(replay.Frame) {
	return func(f replay.Frame) {
		s.emit(ctx, Message{Type: "frame", Frame: &f, Speed: s.ctrl.Speed()})
	}
}

// command turns a client request into work for the controller goroutine.
// Failures are reported to the client, never fatal to the session.
func (s *session) command(ctx context.Context, cmd Command) playback.Command {
	return func(c *playback.Controller) {
		if err := apply(c, cmd); err != nil {
			s.emit(ctx, Message{Type: "error", Error: err.Error()})
		}
	}
}

func apply(c *playback.Controller, cmd Command) error {
	switch cmd.Type {
	case "snapshot":
	case "generate":
		dist, err := dataset.ParseDistribution(cmd.Distribution)
		if err != nil {
			return err
		}
		size := cmd.Size
		if size == 0 {
			size = dataset.DefaultSize
		}
		return c.Generate(size, dist)
	case "set":
		if err := dataset.CheckLength(len(cmd.Values)); err != nil {
			return err
		}
		return c.SetValues(cmd.Values)
	case "algorithms":
		return c.ChooseAlgorithms(algorithms.Algorithm(cmd.Algorithm), algorithms.Algorithm(cmd.Contender))
	case "direction":
		dir, err := sorting.ParseDirection(cmd.Direction)
		if err != nil {
			return err
		}
		return c.ChooseDirection(dir)
	case "start":
		mode, err := replay.ParseMode(cmd.Mode)
		if err != nil {
			return err
		}
		_, err = c.Start(mode)
		return err
	case "pause":
		c.Pause()
	case "resume":
		c.Resume()
	case "toggle":
		c.TogglePause()
	case "step":
		c.Step()
	case "stop":
		c.Stop()
	case "restart":
		_, err := c.Restart()
		return err
	case "speed":
		c.SetSpeed(cmd.Speed)
	default:
		return fmt.Errorf("unknown command: %q", cmd.Type)
	}
	return nil
}
