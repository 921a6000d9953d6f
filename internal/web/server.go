// Package web serves the portfolio: the page, the HTMX fragments that drive
// the roadmap, the resume download and the contact form.
package web

import (
	"context"
	"crypto/rand"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/vacmar/portfolio/internal/config"
	"github.com/vacmar/portfolio/internal/content"
	"github.com/vacmar/portfolio/internal/roadmap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	sessionName    = "portfolio"
	sessionViewKey = "view_id"
	sessionWelcome = "welcomed"
	resumeFilename = "vaaheesan-resume.pdf"
)

// Server wires the gin engine to the roadmap views and site content.
type Server struct {
	cfg      config.Config
	log      *zap.Logger
	store    *roadmap.Store
	profile  content.Profile
	views    *Registry
	metrics  *Metrics
	mailer   Mailer
	sessions sessions.Store
	engine   *gin.Engine
}

// Option customises a Server.
type Option func(*Server)

// WithMailer replaces the SMTP mailer.
func WithMailer(m Mailer) Option { return func(s *Server) { s.mailer = m } }

// WithProfile replaces the profile copy.
func WithProfile(p content.Profile) Option { return func(s *Server) { s.profile = p } }

// New builds the server and its routes.
func New(cfg config.Config, store *roadmap.Store, logger *zap.Logger, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		log:     logger,
		store:   store,
		profile: content.DefaultProfile(),
		metrics: NewMetrics(),
		mailer:  NewSMTPMailer(cfg.SMTP, cfg.ToEmail, logger),
	}
	for _, opt := range opts {
		opt(s)
	}

	cookies, err := newSessionStore(cfg.SessionKey, cfg.SecureCookies, logger)
	if err != nil {
		return nil, err
	}
	s.sessions = cookies

	viewOpts := cfg.Roadmap.ViewOptions()
	viewOpts.Tracker.Observer = roadmap.DefaultObserverOptions
	s.views = NewRegistry(store, viewOpts, cfg.ViewIdleTimeout, logger, s.metrics)

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("web: static assets: %w", err)
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.Use(s.countPageViews())

	r.StaticFS("/assets", http.FS(assets))
	r.Static("/static", cfg.StaticDir)
	r.Static("/images", cfg.ImagesDir)
	r.Static("/audio", cfg.AudioDir)

	r.GET("/", s.index)
	r.POST("/welcome", s.enter)
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	rm := r.Group("/roadmap")
	rm.GET("", s.roadmapSection)
	rm.POST("/filter/:filter", s.setFilter)
	rm.POST("/viewport", s.viewport)
	rm.POST("/section", s.sectionEntered)
	rm.POST("/reveal", s.reveal)
	rm.POST("/hover/:id", s.hover)
	rm.GET("/nodes/:id", s.selectNode)
	rm.POST("/close", s.closeModal)

	r.GET("/resume", s.resume)
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Me"})
	})
	r.POST("/contact", s.contact)

	s.engine = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Views returns the per-visitor view registry.
func (s *Server) Views() *Registry { return s.views }

// Run serves on the configured port until ctx is cancelled, then shuts down
// and unmounts every view.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.views.Run(sweepCtx, sweepInterval(s.cfg.ViewIdleTimeout))
	defer s.views.Close()

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// newSessionStore returns the cookie store holding each visitor's view id.
// Without a configured key a random one is used, so sessions do not
// survive a restart.
func newSessionStore(key string, secure bool, logger *zap.Logger) (sessions.Store, error) {
	raw := []byte(key)
	if key == "" {
		raw = make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("web: session key: %w", err)
		}
		logger.Warn("session_key not set; using a random key")
	} else if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}

	store := sessions.NewCookieStore(raw)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}

func sweepInterval(idle time.Duration) time.Duration {
	return max(idle/4, time.Second)
}
