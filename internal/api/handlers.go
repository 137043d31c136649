package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"KeyForge/internal/bench"
	"KeyForge/internal/derive"
	"KeyForge/internal/engine"
	"KeyForge/internal/entropy"
	"KeyForge/internal/keys"
	"KeyForge/internal/partition"
)

const (
	methodAccelerated = "accelerated-prng"
	methodSecure      = "system-csprng"
)

func (s *Server) factory(secure bool) (entropy.Factory, string) {
	if secure || !s.cfg.Accelerated {
		return entropy.Secure, methodSecure
	}
	return entropy.Fast, methodAccelerated
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{
		"status":           "online",
		"accelerated":      s.cfg.Accelerated,
		"watchlist_loaded": s.watch.Loaded(),
		"version":          Version,
	})
}

type generateKeyRequest struct {
	Secure   bool `json:"secure"`
	Mnemonic bool `json:"mnemonic"`
}

func (s *Server) handleGenerateKey(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req generateKeyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failWith(w, http.StatusBadRequest, fmt.Sprintf("parse request: %v", err))
		return
	}

	factory, method := s.factory(req.Secure)
	src := factory(0)

	start := time.Now()
	b, err := src.NextKeyBytes()
	elapsed := time.Since(start)
	if err != nil {
		s.log.Errorw("generate key failed", "err", err)
		s.failWith(w, http.StatusInternalServerError, err.Error())
		return
	}
	k := keys.PrivateKey(b)

	addrs, err := derive.FromKey(k)
	if err != nil {
		s.log.Errorw("address derivation failed", "err", err)
		s.failWith(w, http.StatusInternalServerError, err.Error())
		return
	}

	data := map[string]any{
		"private_key":     k.Hex(),
		"btc_address":     addrs.BTC,
		"eth_address":     addrs.ETH,
		"method":          method,
		"generation_time": elapsed.Seconds(),
	}
	if req.Mnemonic {
		phrase, err := k.Mnemonic()
		if err != nil {
			s.failWith(w, http.StatusInternalServerError, err.Error())
			return
		}
		data["mnemonic"] = phrase
	}
	s.respond(w, http.StatusOK, data)
}

type generateBatchRequest struct {
	Count   int  `json:"count"`
	Workers int  `json:"workers"`
	Secure  bool `json:"secure"`
}

type sampleEntry struct {
	PrivateKey string `json:"private_key"`
	BTCAddress string `json:"btc_address"`
	ETHAddress string `json:"eth_address"`
}

func (s *Server) handleGenerateBatch(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	req := generateBatchRequest{Count: 10, Workers: s.cfg.Workers}
	if err := decodeJSON(r, &req); err != nil {
		s.failWith(w, http.StatusBadRequest, fmt.Sprintf("parse request: %v", err))
		return
	}
	if req.Count > maxBatchKeys {
		s.failWith(w, http.StatusBadRequest,
			fmt.Sprintf("batch size too large, maximum is %d keys", maxBatchKeys))
		return
	}
	if req.Workers > maxWorkers {
		s.failWith(w, http.StatusBadRequest,
			fmt.Sprintf("worker count too large, maximum is %d", maxWorkers))
		return
	}

	factory, method := s.factory(req.Secure)
	eng := &engine.Engine{Workers: req.Workers, NewSource: factory}

	start := time.Now()
	batch, err := eng.Generate(r.Context(), req.Count)
	elapsed := time.Since(start)
	if err != nil {
		s.fail(w, err)
		return
	}
	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}

	// derive addresses only for a small sample; a full batch derivation
	// would dwarf the generation cost
	sampleN := len(batch)
	if sampleN > sampleLimit {
		sampleN = sampleLimit
	}
	sample := make([]sampleEntry, 0, sampleN)
	for _, hexKey := range batch[:sampleN] {
		addrs, derr := derive.FromHex(hexKey)
		if derr != nil {
			s.log.Errorw("sample derivation failed", "err", derr)
			continue
		}
		sample = append(sample, sampleEntry{
			PrivateKey: hexKey,
			BTCAddress: addrs.BTC,
			ETHAddress: addrs.ETH,
		})
	}

	data := map[string]any{
		"total_keys": len(batch),
		"sample":     sample,
		"performance": map[string]any{
			"generation_time": elapsed.Seconds(),
			"keys_per_second": float64(len(batch)) / elapsed.Seconds(),
			"method":          method,
			"workers":         req.Workers,
		},
	}
	// full key list only for small batches
	if len(batch) <= inlineKeysLimit {
		data["keys"] = batch
	}

	s.log.Infow("batch generated",
		"count", len(batch),
		"workers", req.Workers,
		"method", method,
		"elapsed", elapsed,
	)
	s.respond(w, http.StatusOK, data)
}

type benchmarkRequest struct {
	KeyCount int `json:"key_count"`
	Workers  int `json:"workers"`
}

func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	req := benchmarkRequest{KeyCount: 10_000, Workers: s.cfg.Workers}
	if err := decodeJSON(r, &req); err != nil {
		s.failWith(w, http.StatusBadRequest, fmt.Sprintf("parse request: %v", err))
		return
	}
	if req.KeyCount > maxBenchmarkKeys {
		s.failWith(w, http.StatusBadRequest,
			fmt.Sprintf("benchmark size too large, maximum is %d keys", maxBenchmarkKeys))
		return
	}
	if req.Workers > maxWorkers {
		s.failWith(w, http.StatusBadRequest,
			fmt.Sprintf("worker count too large, maximum is %d", maxWorkers))
		return
	}

	cmp, err := bench.Compare(r.Context(), req.Workers, req.KeyCount)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.log.Infow("benchmark finished",
		"key_count", req.KeyCount,
		"baseline_keys_per_sec", cmp.Baseline.KeysPerSec,
		"accelerated_keys_per_sec", cmp.Accelerated.KeysPerSec,
		"speedup", cmp.Speedup,
	)
	s.respond(w, http.StatusOK, map[string]any{
		"key_count":   req.KeyCount,
		"baseline":    cmp.Baseline,
		"accelerated": cmp.Accelerated,
		"speedup":     cmp.Speedup,
	})
}

type watchlistLoadRequest struct {
	Addresses []string `json:"addresses"`
	Capacity  uint     `json:"capacity"`
	ErrorRate float64  `json:"error_rate"`
}

func (s *Server) handleWatchlistLoad(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	req := watchlistLoadRequest{
		Capacity:  s.cfg.Watchlist.Capacity,
		ErrorRate: s.cfg.Watchlist.ErrorRate,
	}
	if err := decodeJSON(r, &req); err != nil {
		s.failWith(w, http.StatusBadRequest, fmt.Sprintf("parse request: %v", err))
		return
	}
	if len(req.Addresses) == 0 {
		s.failWith(w, http.StatusBadRequest, "no addresses provided")
		return
	}

	n := s.watch.Load(req.Addresses, req.Capacity, req.ErrorRate)
	s.log.Infow("watchlist loaded", "addresses", n)
	s.respond(w, http.StatusOK, map[string]any{
		"addresses_loaded": n,
		"capacity":         req.Capacity,
		"error_rate":       req.ErrorRate,
	})
}

type watchlistCheckRequest struct {
	Addresses []string `json:"addresses"`
}

func (s *Server) handleWatchlistCheck(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if !s.watch.Loaded() {
		s.failWith(w, http.StatusBadRequest, "no watchlist loaded, load addresses first")
		return
	}
	var req watchlistCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failWith(w, http.StatusBadRequest, fmt.Sprintf("parse request: %v", err))
		return
	}
	if len(req.Addresses) == 0 {
		s.failWith(w, http.StatusBadRequest, "no addresses provided")
		return
	}

	results := make(map[string]bool, len(req.Addresses))
	for _, addr := range req.Addresses {
		results[addr] = s.watch.Contains(addr)
	}
	s.respond(w, http.StatusOK, map[string]any{
		"results":       results,
		"total_checked": len(req.Addresses),
	})
}

// fail maps engine errors onto status codes: invalid configuration is
// the caller's fault, everything else is ours.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, partition.ErrInvalidConfiguration) {
		status = http.StatusBadRequest
	}
	s.log.Errorw("request failed", "status", status, "err", err)
	s.failWith(w, status, err.Error())
}
