package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"KeyForge/internal/watchlist"
	"KeyForge/pkg/appcfg"
)

// Version reported by the status endpoint.
const Version = "1.0.0"

// Request caps carried over from the original service limits.
// maxWorkers additionally bounds the request-supplied worker count:
// the engine allocates a range per worker and spawns that many
// goroutines, so an unbounded value is an allocation hole.
const (
	maxBatchKeys     = 100_000
	maxBenchmarkKeys = 1_000_000
	maxWorkers       = 256
	sampleLimit      = 10
	inlineKeysLimit  = 100
)

// Server exposes the generation engine over HTTP. It owns no key
// material: every request is independent and nothing is retained
// between calls except the address watchlist, which holds addresses
// only, never keys.
type Server struct {
	cfg   *appcfg.Config
	watch *watchlist.Watchlist
	log   *zap.SugaredLogger
}

func NewServer(cfg *appcfg.Config, log *zap.SugaredLogger) *Server {
	return &Server{
		cfg:   cfg,
		watch: watchlist.New(),
		log:   log,
	}
}

// Handler wires the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/generate-key", s.handleGenerateKey)
	mux.HandleFunc("/api/generate-batch", s.handleGenerateBatch)
	mux.HandleFunc("/api/benchmark", s.handleBenchmark)
	mux.HandleFunc("/api/watchlist/load", s.handleWatchlistLoad)
	mux.HandleFunc("/api/watchlist/check", s.handleWatchlistCheck)
	return mux
}

// ListenAndServe blocks until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Infow("api listening", "addr", s.cfg.Listen, "accelerated", s.cfg.Accelerated)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		s.log.Errorw("encode response failed", "err", err)
	}
}

func (s *Server) failWith(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: msg})
}

// decodeJSON fills dst from the request body. An empty body leaves dst
// at its defaults, matching the original API's lenient parsing.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
