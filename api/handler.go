// HTTP handlers for cost estimation.
// Handlers wrap the engine - they contain NO estimation logic.

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"vfx-cost/core/determinism"
	"vfx-cost/core/interchange"
	"vfx-cost/core/output"
	"vfx-cost/core/project"
	"vfx-cost/core/style"
	"vfx-cost/core/types"
	"vfx-cost/internal/errors"
	"vfx-cost/internal/metrics"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 4 << 20

// handleEstimate handles POST /estimate.
// The body is a shot configuration; omitted fields keep their defaults.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	shot := types.DefaultShot()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&shot); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "invalid shot configuration", err))
		return
	}

	detailed := queryBool(r, "details")
	resp, err := s.estimate(shot, detailed)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if s.notModified(w, r, shot, detailed) {
		return
	}

	resp.Metadata = s.metadata(r, start)
	s.metrics.RecordEstimate(metrics.SourceHTTP, 1, time.Since(start))
	s.writeJSON(w, resp, http.StatusOK)
}

// handleProject handles POST /project.
// The body is an interchange document; ?format selects the report format.
func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	format := output.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := output.ParseFormat(q)
		if err != nil {
			s.writeError(w, err)
			return
		}
		format = f
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "read project", err))
		return
	}
	scenes, err := interchange.Decode(interchange.FormatJSON, data)
	if err != nil {
		s.writeError(w, err)
		return
	}

	est, err := project.EstimateScenes(s.engine, scenes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if s.notModified(w, r, scenes, format, r.URL.Query().Get("title"), queryBool(r, "details")) {
		return
	}

	report := output.NewProjectReport(est, output.Options{
		Title:       r.URL.Query().Get("title"),
		ShowDetails: queryBool(r, "details"),
		NoColor:     true,
	})
	s.metrics.RecordEstimate(metrics.SourceHTTP, len(scenes), time.Since(start))
	s.logger.Debug("project estimated",
		zap.Int("scenes", len(scenes)),
		zap.String("total", est.Total.String()),
		zap.String("format", string(format)),
	)

	switch format {
	case output.FormatJSON:
		s.writeJSON(w, report, http.StatusOK)
	default:
		w.Header().Set("Content-Type", contentType(format))
		w.WriteHeader(http.StatusOK)
		if err := output.Render(w, format, report, output.Options{NoColor: true}); err != nil {
			s.logger.Warn("render failed", zap.Error(err))
		}
	}
}

// handleRates handles GET /rates
func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	card := s.engine.RateCard()
	s.writeJSON(w, RatesResponse{
		Currency:    card.Currency,
		FPSPolicy:   card.FPSPolicy,
		BriefMode:   card.BriefMode,
		Fingerprint: s.cardHash.Hex(),
		Tables:      card.Tables(),
		Fields:      style.Fields(),
		Unselected:  style.Unselected,
		Chart:       style.Chart,
	}, http.StatusOK)
}

func (s *Server) estimate(shot types.ShotConfiguration, detailed bool) (*EstimateResponse, error) {
	b, err := s.engine.Compute(shot)
	if err != nil {
		return nil, err
	}
	return newEstimateResponse(shot, b, detailed), nil
}

func (s *Server) metadata(r *http.Request, start time.Time) *ResponseMetadata {
	card := s.engine.RateCard()
	return &ResponseMetadata{
		RequestID:     middleware.GetReqID(r.Context()),
		EngineVersion: s.version,
		FPSPolicy:     string(card.FPSPolicy),
		BriefMode:     string(card.BriefMode),
		RateCard:      s.cardHash.Short(),
		DurationMs:    time.Since(start).Milliseconds(),
	}
}

// notModified sets an ETag derived from the rate card and the priced inputs
// and answers 304 when the client already holds that representation
func (s *Server) notModified(w http.ResponseWriter, r *http.Request, inputs ...interface{}) bool {
	h, err := determinism.Fingerprint(append([]interface{}{s.cardHash.Hex()}, inputs...))
	if err != nil {
		return false
	}
	etag := `"` + h.Short() + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}

func contentType(f output.Format) string {
	switch f {
	case output.FormatHTML:
		return "text/html; charset=utf-8"
	case output.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}
