package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/imbecility/tubesave/pkg/gateway"
	"github.com/imbecility/tubesave/pkg/metrics"
	"github.com/imbecility/tubesave/pkg/models"
)

const (
	infoPath     = "/api/youtube/info"
	downloadPath = "/api/youtube/download"
	healthPath   = "/healthz"
	metricsPath  = "/metrics"

	maxBodyBytes    = 64 << 10
	shutdownTimeout = 10 * time.Second
)

// Gateway is the part of gateway.Service the HTTP layer needs.
type Gateway interface {
	Info(ctx context.Context, rawURL string) (*models.VideoSummary, error)
	Download(ctx context.Context, req models.DownloadRequest) (*models.StreamedFile, error)
}

type Server struct {
	Addr    string
	Gateway Gateway
	Metrics *metrics.Collector
	// EnableWeb serves the browser page on "/".
	EnableWeb   bool
	RateLimit   float64
	RateBurst   int
	AllowOrigin string
	// WriteTimeout must outlive the slowest download.
	WriteTimeout time.Duration
}

// NewServer wires a Server from the gateway configuration.
func NewServer(cfg gateway.Config, gw Gateway) *Server {
	cfg = cfg.WithDefaults()
	return &Server{
		Addr:         cfg.Listen,
		Gateway:      gw,
		Metrics:      metrics.New(),
		EnableWeb:    cfg.WebUI,
		RateLimit:    cfg.RateLimit,
		RateBurst:    cfg.RateBurst,
		AllowOrigin:  cfg.AllowOrigin,
		WriteTimeout: cfg.DownloadTimeout + cfg.MetadataTimeout + 30*time.Second,
	}
}

// Handler builds the routed handler with the full middleware chain.
func (s *Server) Handler() http.Handler {
	if s.Metrics == nil {
		s.Metrics = metrics.New()
	}

	mux := http.NewServeMux()
	mux.HandleFunc(infoPath, s.handleInfo)
	mux.HandleFunc(downloadPath, s.handleDownload)
	mux.HandleFunc(healthPath, s.handleHealth)
	mux.Handle(metricsPath, s.Metrics.Handler())
	if s.EnableWeb {
		mux.HandleFunc("/", s.handleWebIndex)
	}

	origin := s.AllowOrigin
	if origin == "" {
		origin = "*"
	}
	limit, burst := rate.Limit(s.RateLimit), s.RateBurst
	if s.RateLimit <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}

	return chain(mux,
		recoveryMiddleware,
		requestIDMiddleware,
		accessLogMiddleware,
		metricsMiddleware(s.Metrics),
		rateLimitMiddleware(rate.NewLimiter(limit, burst)),
		corsMiddleware(origin),
	)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", s.Addr).Bool("web_ui", s.EnableWeb).Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("Shutting down API server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.InfoRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := s.Gateway.Info(r.Context(), req.URL)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("url", req.URL).Msg("Info request failed")
		if errors.Is(err, gateway.ErrInvalidURL) {
			respondError(w, http.StatusBadRequest, "Invalid YouTube URL")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch video info")
		return
	}

	respondJSON(w, http.StatusOK, models.InfoResponse{VideoDetails: summary})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.DownloadRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	done := s.Metrics.DownloadStarted()
	defer done()

	file, err := s.Gateway.Download(r.Context(), req)
	if err != nil {
		s.Metrics.DownloadFailed(gateway.Reason(err))
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("url", req.URL).Str("format", req.Format).Msg("Download failed")
		respondError(w, gateway.StatusCode(err), downloadErrorMessage(err))
		return
	}

	h := w.Header()
	h.Set("Content-Type", file.ContentType)
	h.Set("Content-Length", strconv.Itoa(len(file.Data)))
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Client went away mid-response")
		return
	}
	s.Metrics.DownloadSucceeded(len(file.Data))
}

func downloadErrorMessage(err error) string {
	switch {
	case errors.Is(err, gateway.ErrInvalidURL):
		return "Invalid YouTube URL"
	case errors.Is(err, gateway.ErrInvalidFormat):
		return "Download failed: " + gateway.ErrInvalidFormat.Error()
	}
	return "Download failed: " + err.Error()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, models.ErrorResponse{Error: msg})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("JSON encoding failed")
	}
}
