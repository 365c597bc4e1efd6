// Package server exposes seam carving over HTTP.
//
//	POST /v1/resize?width=N[&forward=bool][&view=color|gray|energy|cost|seams]
//	GET  /v1/healthz
//
// The resize body is the raw image in any supported format. The response is
// a PNG of the requested view with X-Image-Size and X-Seam-Count headers.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/maax3v3/seamcarve/internal/carving"
	"github.com/maax3v3/seamcarve/internal/config"
	"github.com/maax3v3/seamcarve/internal/imaging"
)

const shutdownTimeout = 5 * time.Second

var views = map[string]func(*carving.Engine) image.Image{
	"color":  func(e *carving.Engine) image.Image { return e.ColorImage() },
	"gray":   func(e *carving.Engine) image.Image { return e.OriginalImage() },
	"energy": func(e *carving.Engine) image.Image { return e.EnergyImage() },
	"cost":   func(e *carving.Engine) image.Image { return e.CostImage() },
	"seams":  func(e *carving.Engine) image.Image { return e.SeamImage() },
}

// Server serves resize requests. Each request gets its own Engine.
type Server struct {
	cfg    *config.Config
	log    logrus.FieldLogger
	router chi.Router
}

// New builds a Server from cfg. cfg must be valid.
func New(cfg *config.Config, log logrus.FieldLogger) *Server {
	s := &Server{cfg: cfg, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", s.handleHealth)
		r.Post("/resize", s.handleResize)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler of s.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on cfg.Server.Addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("Listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	log := s.log.WithField("request_id", middleware.GetReqID(r.Context()))

	q := r.URL.Query()
	width, err := strconv.Atoi(q.Get("width"))
	if err != nil {
		http.Error(w, "width must be an integer", http.StatusBadRequest)
		return
	}
	forward := s.cfg.Carving.ForwardEnergy
	if v := q.Get("forward"); v != "" {
		if forward, err = strconv.ParseBool(v); err != nil {
			http.Error(w, "forward must be a boolean", http.StatusBadRequest)
			return
		}
	}
	viewName := q.Get("view")
	if viewName == "" {
		viewName = "color"
	}
	render, ok := views[viewName]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown view %q", viewName), http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	hdr, _, err := imaging.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if px := int64(hdr.Width) * int64(hdr.Height); px > s.cfg.Server.MaxPixels {
		log.WithFields(logrus.Fields{"width": hdr.Width, "height": hdr.Height}).Warn("Image rejected")
		http.Error(w, fmt.Sprintf("image has %d pixels, limit is %d", px, s.cfg.Server.MaxPixels), http.StatusRequestEntityTooLarge)
		return
	}
	img, format, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	engine, err := carving.Load(img, carving.Options{
		ForwardEnergy:  forward,
		CapacityFactor: s.cfg.Carving.CapacityFactor,
		Highlight:      s.cfg.HighlightColor().ToStdColor(),
		Logger:         log,
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if err := engine.ResizeContext(r.Context(), width, nil); err != nil {
		log.WithError(err).WithField("width", width).Warn("Resize failed")
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	data, err := imaging.PNGBytes(render(engine))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.WithFields(logrus.Fields{
		"format": format,
		"size":   engine.FormattedSize(),
		"view":   viewName,
	}).Debug("Resized")

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Image-Size", engine.FormattedSize())
	w.Header().Set("X-Seam-Count", strconv.Itoa(len(engine.Seams())))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// statusFor maps carving errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, carving.ErrInvalidDimensions), errors.Is(err, carving.ErrDegenerateResize):
		return http.StatusUnprocessableEntity
	case errors.Is(err, carving.ErrCapacityExceeded):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.WithFields(logrus.Fields{
					"request_id": middleware.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"remote":     r.RemoteAddr,
					"status":     ww.Status(),
					"bytes":      ww.BytesWritten(),
					"took":       time.Since(start),
				}).Info("Request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
