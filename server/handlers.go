package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/poiesic/evidex/ai"
	"github.com/poiesic/evidex/core"
	"github.com/poiesic/evidex/search"
	"github.com/poiesic/evidex/vectorstore"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	// Decoding over a defaulted request keeps omitted fields at the
	// service defaults (limit 5, floor 0.05, both toggles on).
	req := core.NewSearchRequest("")
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx := r.Context()

	// Intent classification shares no state with retrieval, so it runs
	// alongside the search call.
	var intentCh chan *ai.Intent
	if s.intents != nil {
		intentCh = make(chan *ai.Intent, 1)
		go func() {
			intentCh <- s.intents.Extract(ctx, req.Query)
		}()
	}

	resp, err := s.searcher.Search(ctx, req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, core.ErrInvalidRequest):
			status = http.StatusBadRequest
		case errors.Is(err, search.ErrEncodingFailed),
			errors.Is(err, vectorstore.ErrUnavailable):
			status = http.StatusBadGateway
		}
		s.logger.Error("search failed", "query", req.Query, "status", status, "err", err)
		writeError(w, status, "evidence search failed: "+err.Error())
		return
	}

	if intentCh != nil {
		if extracted := <-intentCh; extracted != nil {
			resp.Metadata["intent"] = extracted
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]any{"status": "ok"}
	if s.store != nil {
		if count, err := s.store.Count(r.Context()); err == nil {
			health["papers"] = count
		} else {
			health["status"] = "degraded"
			s.logger.Warn("health check could not count collection", "err", err)
		}
	}
	writeJSON(w, http.StatusOK, health)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
