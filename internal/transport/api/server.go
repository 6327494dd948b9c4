package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/service/ingest"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

const maxBodyBytes = 10 << 20

type Coach interface {
	StartSession(ctx context.Context, id string) (core.TurnResult, error)
	Submit(ctx context.Context, id, text string, kind core.TurnKind) (core.TurnResult, error)
	Snapshot(id string) (core.Snapshot, error)
	Reset(ctx context.Context, id string) error
}

type Library interface {
	List(ctx context.Context) ([]core.StoredDocument, error)
	ImportText(ctx context.Context, name, text string) (core.StoredDocument, error)
	ImportURL(ctx context.Context, rawURL string) (core.StoredDocument, error)
	ImportBytes(ctx context.Context, name string, data []byte) (core.StoredDocument, error)
	Delete(ctx context.Context, name string) error
}

// Server is the JSON API. Sessions are addressed by server-minted ids and
// every turn names its kind explicitly.
type Server struct {
	coach   Coach
	library Library
	mux     *http.ServeMux
	http    *http.Server
}

func NewServer(addr string, coach Coach, library Library) *Server {
	s := &Server{
		coach:   coach,
		library: library,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /api/sessions", s.handleStartSession)
	s.mux.HandleFunc("GET /api/sessions/{id}", s.handleSessionState)
	s.mux.HandleFunc("DELETE /api/sessions/{id}", s.handleResetSession)
	s.mux.HandleFunc("POST /api/sessions/{id}/turns", s.handleTurn)
	s.mux.HandleFunc("GET /api/materials", s.handleListMaterials)
	s.mux.HandleFunc("POST /api/materials", s.handleUploadMaterial)
	s.mux.HandleFunc("DELETE /api/materials/{name}", s.handleDeleteMaterial)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) Name() string { return "http" }

func (s *Server) Start(ctx context.Context) error {
	s.http.BaseContext = func(_ net.Listener) context.Context { return ctx }
	log.FromCtx(ctx).Info().Str("addr", s.http.Addr).Msg("starting http api")

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	ctx := log.WithSession(r.Context(), id)

	res, err := s.coach.StartSession(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

type turnRequest struct {
	Text string        `json:"text"`
	Kind core.TurnKind `json:"kind"`
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ctx := log.WithSession(r.Context(), id)

	var req turnRequest
	if !decode(w, r, &req) {
		return
	}
	if !req.Kind.Valid() {
		writeMessage(w, http.StatusBadRequest, "kind must be one of pitch, response, readiness, price_proposal, negotiation")
		return
	}

	res, err := s.coach.Submit(ctx, id, req.Text, req.Kind)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.coach.Snapshot(r.PathValue("id"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.coach.Reset(log.WithSession(r.Context(), id), id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	docs, err := s.library.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if docs == nil {
		docs = []core.StoredDocument{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// uploadRequest carries exactly one of text, url or data. Data is a base64
// file body, e.g. a PDF, extracted by the extension of name.
type uploadRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
	URL  string `json:"url"`
	Data []byte `json:"data"`
}

func (s *Server) handleUploadMaterial(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if !decode(w, r, &req) {
		return
	}

	var (
		doc core.StoredDocument
		err error
	)
	switch {
	case req.URL != "":
		doc, err = s.library.ImportURL(r.Context(), req.URL)
		if err != nil && statusFor(err) == http.StatusInternalServerError {
			log.FromCtx(r.Context()).Warn().Err(err).Str("url", req.URL).Msg("material fetch failed")
			writeMessage(w, http.StatusBadGateway, "could not fetch "+req.URL)
			return
		}
	case len(req.Data) > 0:
		doc, err = s.library.ImportBytes(r.Context(), req.Name, req.Data)
	case strings.TrimSpace(req.Text) == "":
		writeMessage(w, http.StatusBadRequest, "text, url or data is required")
		return
	default:
		doc, err = s.library.ImportText(r.Context(), req.Name, req.Text)
	}
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	if err := s.library.Delete(r.Context(), r.PathValue("name")); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrSessionNotFound), errors.Is(err, core.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrMissingInput),
		errors.Is(err, ingest.ErrInvalidName),
		errors.Is(err, ingest.ErrUnsupportedFormat),
		errors.Is(err, ingest.ErrUnreadable):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInvalidSessionState), errors.Is(err, core.ErrEmptyCorpus):
		return http.StatusConflict
	case errors.Is(err, core.ErrContextTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrGenerationTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, core.ErrGenerationAuth), errors.Is(err, core.ErrGenerationUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.FromCtx(ctx).Error().Err(err).Int("status", status).Msg("request failed")
	}
	if status == http.StatusInternalServerError {
		writeMessage(w, status, "internal server error")
		return
	}
	writeMessage(w, status, err.Error())
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
