// Package server streams replay frames to browser renderers over
// WebSocket and exposes the trace generators over a small JSON API.
//
// Every WebSocket connection gets its own playback controller. Commands
// arrive as JSON objects, frames leave as JSON objects; a connection never
// observes another connection's run.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/dataset"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/playback"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	opts     playback.Options
	size     int
	dist     dataset.Distribution
	router   *mux.Router
	upgrader websocket.Upgrader

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a server whose sessions start on a generated array of the
// given size and distribution.
func New(opts playback.Options, size int, dist dataset.Distribution) *Server {
	seed := opts.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Server{
		opts:   opts,
		size:   size,
		dist:   dist,
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		rng: rand.New(rand.NewSource(seed)),
	}
	s.router.HandleFunc("/api/algorithms", s.handleAlgorithms).Methods(http.MethodGet)
	s.router.HandleFunc("/api/trace", s.handleTrace).Methods(http.MethodPost)
	s.router.HandleFunc("/ws", s.handleWS)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down. Open
// sessions are cancelled through ctx as well.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("server: shutdown")
		}
	}()

	log.WithField("addr", addr).Info("server: listening")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newValues draws the starting array for a session.
func (s *Server) newValues() (sorting.Array, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dataset.Generate(s.size, s.dist, s.rng)
}

type algorithmInfo struct {
	ID algorithms.Algorithm `json:"id"`
	algorithms.Details
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	all := algorithms.All()
	infos := make([]algorithmInfo, 0, len(all))
	for _, alg := range all {
		infos = append(infos, algorithmInfo{ID: alg, Details: algorithms.Info(alg)})
	}
	writeJSON(w, http.StatusOK, infos)
}

type traceRequest struct {
	Algorithm string `json:"algorithm"`
	Direction string `json:"direction"`
	Values    []int  `json:"values"`
	Seed      int64  `json:"seed"`
}

type traceResponse struct {
	Algorithm algorithms.Algorithm `json:"algorithm"`
	Direction sorting.Direction    `json:"direction"`
	Steps     sorting.Trace        `json:"steps"`
	Counts    sorting.Counts       `json:"counts"`
	Final     []int                `json:"final"`
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	var req traceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	alg, err := algorithms.Parse(req.Algorithm)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	dir, err := sorting.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var rng *rand.Rand
	if req.Seed != 0 {
		rng = rand.New(rand.NewSource(req.Seed))
	}
	values := sorting.Array(req.Values)
	if err := dataset.CheckLength(len(values)); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	trace, err := algorithms.Generate(alg, values, dir, rng)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	log.WithFields(log.Fields{"algorithm": alg, "size": len(values), "steps": len(trace)}).Debug("server: trace generated")
	writeJSON(w, http.StatusOK, traceResponse{
		Algorithm: alg,
		Direction: dir,
		Steps:     trace,
		Counts:    trace.Counts(),
		Final:     trace.Apply(values),
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	values, err := s.newValues()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("server: websocket upgrade failed")
		return
	}
	newSession(conn, playback.New(s.opts, values)).run(r.Context())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("server: encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
