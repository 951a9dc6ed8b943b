package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"comboforge/internal/combo"
	"comboforge/internal/pipeline"
	"comboforge/internal/provider"
	"comboforge/pkg/logging/logging"
)

// ComboHandler serves POST /v1/combos.
type ComboHandler struct {
	Generator *pipeline.Generator
}

func NewComboHandler(g *pipeline.Generator) *ComboHandler {
	return &ComboHandler{Generator: g}
}

// comboRequest is the wire shape of a generation request.
type comboRequest struct {
	Words string `json:"words"`
	Mode  string `json:"mode"`
	Tone  string `json:"tone"`
	Seed  string `json:"seed"`
	Lines int    `json:"lines"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Generate handles POST /v1/combos.
func (h *ComboHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	var req comboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Mode is validated before the rate limiter so a bad request never
	// consumes quota.
	mode, err := combo.ParseMode(req.Mode)
	if err != nil {
		logger.Warn("invalid mode", zap.String("mode", req.Mode))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Words == "" {
		h.writeError(w, http.StatusBadRequest, "words is required")
		return
	}

	// RealIP middleware has rewritten RemoteAddr to the client address.
	clientID := r.RemoteAddr
	if clientID == "" {
		clientID = "unknown"
	}

	genReq := combo.GenerationRequest{
		Topic:    req.Words,
		Mode:     mode,
		Tone:     req.Tone,
		Seed:     req.Seed,
		LineHint: req.Lines,
	}

	result, cached, err := h.Generator.Generate(ctx, genReq, clientID)
	if err != nil {
		h.writePipelineError(w, logger, err)
		return
	}

	logger.Info("combos_served",
		zap.String("mode", string(mode)),
		zap.Bool("cache_hit", cached),
		zap.Int("emoji_count", len(result.Emoji)),
		zap.Int("ascii_count", len(result.Ascii)),
		zap.Duration("total_latency_ms", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, result)
}

// writePipelineError maps pipeline sentinel errors onto HTTP statuses:
// 429 for rate limiting, 500 when no provider is configured at all, 502
// for upstream failures (exhausted chain, malformed model output).
func (h *ComboHandler) writePipelineError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, pipeline.ErrRateLimited):
		h.writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
	case errors.Is(err, provider.ErrNoProvider):
		logger.Error("no provider configured", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "no provider configured")
	case errors.Is(err, provider.ErrAllProvidersFailed),
		errors.Is(err, pipeline.ErrMalformedOutput):
		logger.Error("generation failed upstream", zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "generation failed")
	default:
		logger.Error("generation failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *ComboHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *ComboHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
