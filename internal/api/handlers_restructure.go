package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avolkov/restruct/internal/repair"
	"github.com/avolkov/restruct/internal/restructure"
	"github.com/avolkov/restruct/internal/segment"
)

type splitRequest struct {
	Title               string  `json:"title"`
	Content             string  `json:"content"`
	MaxWordCount        int     `json:"max_word_count"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	GenerateTitles      bool    `json:"generate_titles"`
}

// handleSplit restructures a single text synchronously. Title generation is
// opt-in; without it every section gets its derived default label.
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		jsonError(w, "content is required", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		req.Title = "Untitled"
	}

	opts := restructure.Options{
		MaxWordCount:        s.cfg.DefaultMaxWordCount,
		Threshold:           s.cfg.SimilarityThreshold,
		MaxConcurrentTitles: s.cfg.MaxConcurrentTitles,
		TitleTimeout:        s.cfg.TitleTimeout,
	}
	if req.MaxWordCount != 0 {
		opts.MaxWordCount = req.MaxWordCount
	}
	if req.SimilarityThreshold > 0 {
		opts.Threshold = req.SimilarityThreshold
	}

	var titler restructure.TitleGenerator
	if req.GenerateTitles && s.llm != nil {
		titler = s.llm
	}

	res, err := restructure.Run(r.Context(), titler, req.Title, req.Content, opts)
	if err != nil {
		if errors.Is(err, segment.ErrInvalidBudget) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sections := res.Sections
	if sections == nil {
		sections = []restructure.Section{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"total_sections":  len(sections),
		"sections":        sections,
		"title_fallbacks": len(res.TitleFailures),
	})
}

type recoverRequest struct {
	Raw string `json:"raw"`
}

// handleRecover extracts and repairs a structured payload from raw model
// output. Unrecoverable input returns 422 with both the raw and sanitized
// text for diagnosis.
func (s *Server) handleRecover(w http.ResponseWriter, r *http.Request) {
	var req recoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Raw == "" {
		jsonError(w, "raw is required", http.StatusBadRequest)
		return
	}

	var payload any
	rec, err := repair.Recover(req.Raw, &payload)
	if err != nil {
		var unrec *repair.UnrecoverableStructureError
		if errors.As(err, &unrec) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{
				"error":     "unrecoverable structure: " + unrec.Err.Error(),
				"raw":       unrec.Raw,
				"sanitized": unrec.Sanitized,
			})
			return
		}
		if errors.Is(err, repair.ErrMalformedStructure) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"reasoning": rec.Reasoning,
		"payload":   payload,
	})
}
