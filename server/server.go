package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/xyproto/randomstring"

	"liftsim/config"
	"liftsim/sim"
)

const (
	connIDLen   = 12
	defaultPace = 200 * time.Millisecond
	maxPace     = 5 * time.Second
)

// Options configures the server instance.
type Options struct {
	// Seed for requests that do not choose one; 0 picks a time-based seed per request.
	Seed int64
	// Pace between streamed ticks when the client does not choose one.
	Pace time.Duration
}

type Server struct {
	Config config.Config
	Opt    Options

	log     zerolog.Logger
	streams sync.Map // map[connID]stop func
}

func New(cfg config.Config, opt Options, log zerolog.Logger) *Server {
	if opt.Pace <= 0 {
		opt.Pace = defaultPace
	}
	return &Server{Config: cfg, Opt: opt, log: log}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/api/config", s.handleConfig)
	r.Post("/api/run", s.handleRun)
	r.Get("/api/stream", s.handleStream)
	r.Delete("/api/stream/{connID}", s.handleStop)
	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
	}
}

func (s *Server) seed(explicit int64) int64 {
	if explicit != 0 {
		return explicit
	}
	if s.Opt.Seed != 0 {
		return s.Opt.Seed
	}
	return time.Now().UnixNano()
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Config)
}

type runRequest struct {
	Seed   int64             `json:"seed"`
	Config map[string]string `json:"config"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
	}
	cfg, err := s.requestConfig(req.Config)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	seed := s.seed(req.Seed)
	engine, err := sim.NewSimulator(cfg, seed, sim.WithLogger(s.log))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, engine.Run())
}

// requestConfig layers per-request overrides on the server configuration.
func (s *Server) requestConfig(props map[string]string) (config.Config, error) {
	cfg, err := config.Apply(s.Config, props)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	connID := chi.URLParam(r, "connID")
	v, ok := s.streams.Load(connID)
	if !ok {
		http.Error(w, "unknown conn_id", http.StatusNotFound)
		return
	}
	v.(func())()
	s.log.Info().Str("conn", connID).Msg("stream stopped by request")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}
	q := r.URL.Query()
	props := make(map[string]string, len(q))
	for k := range q {
		props[k] = q.Get(k)
	}
	cfg, err := s.requestConfig(props)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var explicitSeed int64
	if v := q.Get("seed"); v != "" {
		if explicitSeed, err = strconv.ParseInt(v, 10, 64); err != nil {
			http.Error(w, "bad seed", http.StatusBadRequest)
			return
		}
	}
	pace := s.Opt.Pace
	if v := q.Get("pace_ms"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			http.Error(w, "bad pace_ms", http.StatusBadRequest)
			return
		}
		pace = min(time.Duration(ms)*time.Millisecond, maxPace)
	}
	seed := s.seed(explicitSeed)
	connID := randomstring.EnglishFrequencyString(connIDLen)
	log := s.log.With().Str("conn", connID).Logger()

	events, stop, wait, err := sim.StartRunner(cfg, seed, pace, log)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer wait()
	defer stop()
	s.streams.Store(connID, stop)
	defer s.streams.Delete(connID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flush := func(event string, payload any) error {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	log.Info().Int64("seed", seed).Dur("pace", pace).Msg("stream started")
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("client disconnected")
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			name, payload := eventPayload(e, connID)
			if err := flush(name, payload); err != nil {
				log.Warn().Err(err).Msg("stream write failed")
				return
			}
		}
	}
}

// eventPayload maps a simulation event to its SSE event name and body.
func eventPayload(e sim.Event, connID string) (string, any) {
	switch ev := e.(type) {
	case sim.InitEvent:
		return "init", map[string]any{"conn_id": connID, "seed": ev.Seed, "config": ev.Config}
	case sim.TickEvent:
		return "tick", ev
	case sim.ArrivalEvent:
		return "arrival", ev
	case sim.FloorStatusEvent:
		return "floor", ev
	case sim.MoveEvent:
		return "move", ev
	case sim.BoardEvent:
		return "board", ev
	case sim.DeliverEvent:
		return "deliver", ev
	case sim.DirectionEvent:
		return "direction", ev
	case sim.DoneEvent:
		return "done", ev.Summary
	}
	return "unknown", e
}
