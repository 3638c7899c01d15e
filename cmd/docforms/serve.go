package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docuforge/docforms/pkg/descriptor"
	"github.com/docuforge/docforms/pkg/form"
	"github.com/docuforge/docforms/pkg/preview"
	"github.com/docuforge/docforms/pkg/render"
	"github.com/docuforge/docforms/pkg/renderers/html"
)

func newServeCmd() *cobra.Command {
	var src sourceFlags
	var addr, outDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP with a live preview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			docType, list, err := src.load(ctx)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			srv := &formServer{
				docType: docType,
				fields:  list.Sorted(),
				outDir:  outDir,
				logger:  logger,
			}
			if srv.renderer, err = html.New(); err != nil {
				return err
			}

			router := chi.NewRouter()
			router.Use(middleware.Recoverer)
			router.Use(requestLogger(logger))
			router.Get("/", srv.handleForm)
			router.Post("/", srv.handleSubmit)
			router.Post("/preview", srv.handlePreview)

			logger.Info("serving form",
				zap.String("addr", addr),
				zap.String("document_type", docType))
			server := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&outDir, "out", "submissions", "directory for submitted documents and drafts")
	return cmd
}

type formServer struct {
	docType  string
	fields   descriptor.List
	renderer *html.Renderer
	outDir   string
	logger   *zap.Logger
}

func (s *formServer) handleForm(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, render.RenderOptions{})
}

// handleSubmit runs a one-shot session over the posted values. ?draft=1
// bypasses validation, matching the draft contract.
func (s *formServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form payload", http.StatusBadRequest)
		return
	}

	sess, err := form.New(s.docType, s.fields,
		form.WithLogger(s.logger),
		form.WithSubmitFunc(s.store),
		form.WithDraftFunc(s.store),
	)
	if err != nil {
		s.fail(w, err)
		return
	}
	for _, d := range s.fields {
		if value := r.PostFormValue(d.FieldName); value != "" {
			if err := sess.SetValue(d.FieldName, value); err != nil {
				s.fail(w, err)
				return
			}
		}
	}

	var sub form.Submission
	if r.URL.Query().Get("draft") == "1" {
		sub, err = sess.SaveDraft(r.Context())
	} else {
		sub, err = sess.Submit(r.Context())
	}

	var verr *form.ValidationError
	if errors.As(err, &verr) {
		s.renderForm(w, r, render.RenderOptions{
			Values: sess.Values(),
			Errors: verr.Fields,
		})
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, preview.HTML(preview.Project(s.docType, s.fields, sub.Values)))
}

// handlePreview recomputes the projection from the posted values without
// touching any stored state.
func (s *formServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form payload", http.StatusBadRequest)
		return
	}
	values := make(map[string]any, len(s.fields))
	for _, d := range s.fields {
		if value := r.PostFormValue(d.FieldName); value != "" {
			values[d.FieldName] = value
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, preview.HTML(preview.Project(s.docType, s.fields, values)))
}

func (s *formServer) renderForm(w http.ResponseWriter, r *http.Request, opts render.RenderOptions) {
	markup, err := s.renderer.Render(r.Context(), render.NewForm(s.docType, s.fields), opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	_, _ = w.Write(markup)
}

// store persists a submission payload as a JSON file named by its id.
func (s *formServer) store(_ context.Context, sub form.Submission) error {
	payload, err := json.MarshalIndent(sub.Payload(), "", "  ")
	if err != nil {
		return err
	}
	name := sub.ID + ".json"
	if sub.IsDraft {
		name = sub.ID + ".draft.json"
	}
	return os.WriteFile(filepath.Join(s.outDir, name), payload, 0o644)
}

func (s *formServer) fail(w http.ResponseWriter, err error) {
	var cfgErr *descriptor.ConfigError
	if errors.As(err, &cfgErr) {
		// Upstream data problem, not a user error; surface it loudly.
		s.logger.Error("descriptor configuration error", zap.Error(cfgErr))
		http.Error(w, cfgErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.logger.Error("request failed", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
