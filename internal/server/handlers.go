package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rohmanhakim/lyrics-service/internal/resolver"
	"github.com/rs/zerolog"
)

const (
	detailNotFound       = "Lyrics not found."
	detailRetrievalError = "Failed to retrieve lyrics."
	detailBadRequest     = "Invalid lyrics request."
	detailBadPayload     = "Request body is not valid JSON."
)

type detailResponse struct {
	Detail string `json:"detail"`
}

// batchItemResponse carries either the lyrics or an error marker for
// one request of a batch, never both.
type batchItemResponse struct {
	TrackID    string `json:"track_id"`
	ArtistName string `json:"artist_name"`
	TrackTitle string `json:"track_title"`
	Lyrics     string `json:"lyrics,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (s *Server) requestLogger(r *http.Request) (zerolog.Logger, string) {
	requestID := uuid.NewString()
	logger := s.logger.With().
		Str("request_id", requestID).
		Str("path", r.URL.Path).
		Logger()
	return logger, requestID
}

func (s *Server) handleLyrics(w http.ResponseWriter, r *http.Request) {
	logger, requestID := s.requestLogger(r)
	w.Header().Set("X-Request-ID", requestID)

	var req resolver.LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("rejecting malformed request body")
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: detailBadPayload})
		return
	}

	result, err := s.resolver.Resolve(r.Context(), req)
	if err != nil {
		switch {
		case resolver.IsInvalidRequest(err):
			writeJSON(w, http.StatusBadRequest, detailResponse{Detail: detailBadRequest})
		case resolver.IsNotFound(err):
			writeJSON(w, http.StatusNotFound, detailResponse{Detail: detailNotFound})
		default:
			logger.Error().Err(err).Msg("lyrics retrieval failed")
			writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: detailRetrievalError})
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLyricsBatch(w http.ResponseWriter, r *http.Request) {
	logger, requestID := s.requestLogger(r)
	w.Header().Set("X-Request-ID", requestID)

	var reqs []resolver.LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		logger.Warn().Err(err).Msg("rejecting malformed batch body")
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: detailBadPayload})
		return
	}

	outcomes := s.resolver.ResolveAll(r.Context(), reqs)

	// One response item per request, in request order.
	items := make([]batchItemResponse, len(outcomes))
	for i, outcome := range outcomes {
		item := batchItemResponse{
			TrackID:    reqs[i].TrackID,
			ArtistName: reqs[i].ArtistName,
			TrackTitle: reqs[i].TrackTitle,
		}
		switch {
		case outcome.Err == nil:
			item.Lyrics = outcome.Result.Lyrics
		case resolver.IsInvalidRequest(outcome.Err):
			item.Error = detailBadRequest
		case resolver.IsNotFound(outcome.Err):
			item.Error = detailNotFound
		default:
			logger.Error().Err(outcome.Err).Int("index", i).Msg("batch item failed")
			item.Error = detailRetrievalError
		}
		items[i] = item
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("health check failed against store")
		writeJSON(w, http.StatusServiceUnavailable, detailResponse{Detail: "store unreachable"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
