package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/cache/policy"
	"github.com/sarchlab/cachesim/config"
	"github.com/sarchlab/cachesim/units"
)

type configureRequest struct {
	Size          string `json:"size"`
	BlockSize     string `json:"blockSize"`
	Associativity any    `json:"associativity"`
	Policy        string `json:"policy"`
}

type accessRequest struct {
	Address any  `json:"address"`
	IsWrite bool `json:"isWrite"`
}

type accessResult struct {
	Hit     bool             `json:"hit"`
	Evicted *cache.BlockInfo `json:"evicted"`
	State   cache.Contents   `json:"state"`
}

// apiStats mirrors the statistics keys the web front end consumes.
type apiStats struct {
	TotalAccesses uint64  `json:"totalAccesses"`
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	Evictions     uint64  `json:"evictions"`
	HitRate       float64 `json:"hitRate"`
	MissRate      float64 `json:"missRate"`
}

func (s *Server) configure(w http.ResponseWriter, r *http.Request) {
	var req configureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No configuration data provided")
		return
	}

	totalSize, err := units.ParseSize(req.Size)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid size format: "+err.Error())
		return
	}

	blockSize, err := units.ParseSize(req.BlockSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid size format: "+err.Error())
		return
	}

	associativity, err := parseAssociativity(req.Associativity)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid associativity value")
		return
	}

	kind, err := policy.ParseKind(req.Policy)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid replacement policy")
		return
	}

	// Validate-then-commit: the previous cache survives a failed
	// configure.
	newCache, err := cache.New(totalSize, blockSize, associativity, kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.cache = newCache
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"config": cache.Topology{
			NumSets:    newCache.NumSets(),
			WaysPerSet: newCache.Ways(),
			BlockSize:  newCache.BlockSize(),
		},
	})
}

func (s *Server) access(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache == nil {
		writeError(w, http.StatusBadRequest, "Cache not configured")
		return
	}

	var req accessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No access data provided")
		return
	}

	address, err := parseAddress(req.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid address format")
		return
	}

	hit, evicted, err := s.cache.Access(address, req.IsWrite)
	if err != nil {
		s.log.WithError(err).Error("cache invariant violation")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := accessResult{
		Hit:   hit,
		State: s.cache.Contents(),
	}
	if evicted != nil {
		info := cache.BlockInfoOf(evicted)
		result.Evicted = &info
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  result,
	})
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache == nil {
		writeError(w, http.StatusBadRequest, "Cache not configured")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"state":   s.cache.Contents(),
	})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache == nil {
		writeError(w, http.StatusBadRequest, "Cache not configured")
		return
	}

	st := s.cache.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats": apiStats{
			TotalAccesses: st.Accesses,
			Hits:          st.Hits,
			Misses:        st.Misses,
			Evictions:     st.Evictions,
			HitRate:       st.HitRate(),
			MissRate:      st.MissRate(),
		},
	})
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// parseAssociativity accepts the JSON forms a front end may send: the
// string "fully", a numeric string, or a plain number.
func parseAssociativity(v any) (int, error) {
	switch value := v.(type) {
	case string:
		return config.ParseAssociativity(value)
	case float64:
		return int(value), nil
	default:
		return 0, errors.New("invalid associativity value")
	}
}

// parseAddress accepts a JSON number or a decimal/0x-prefixed string.
func parseAddress(v any) (uint64, error) {
	switch value := v.(type) {
	case string:
		return strconv.ParseUint(value, 0, 64)
	case float64:
		if value < 0 {
			return 0, errors.New("address must be non-negative")
		}
		return uint64(value), nil
	default:
		return 0, errors.New("invalid address")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}
