package dev

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/svgkit/internal/config"
	"github.com/vango-dev/svgkit/internal/errors"
	"github.com/vango-dev/svgkit/internal/svg"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Context is the SVG build context. Required.
	Context *svg.Context

	// Registry exposes pipeline metrics on /metrics when set.
	Registry *prometheus.Registry

	// Verbose enables per-change logging.
	Verbose bool

	// OnReload is called when browsers are reloaded.
	OnReload func(clients int)
}

// Server is the development server. It serves project files directly
// and turns .svg requests into ES modules using the same classification
// the bundled plugin applies.
type Server struct {
	config       *config.Config
	options      ServerOptions
	svgctx       *svg.Context
	watcher      *Watcher
	reloadServer *ReloadServer
	changeCh     chan Change
	httpServer   *http.Server
	mu           sync.Mutex
	running      bool
	hotReload    bool
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	hotReload := cfg.Dev.HotReload

	watcher := NewWatcher(WatcherConfig{
		Paths:    CollectWatchPaths(cfg),
		Ignore:   append(DefaultIgnore, cfg.Dev.Ignore...),
		Debounce: 100 * time.Millisecond,
	})

	var reloadServer *ReloadServer
	if hotReload {
		reloadServer = NewReloadServer()
	}

	return &Server{
		config:       cfg,
		options:      options,
		svgctx:       options.Context,
		watcher:      watcher,
		reloadServer: reloadServer,
		hotReload:    hotReload,
	}
}

// Start starts the development server and blocks until ctx is done or
// the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	s.changeCh = make(chan Change, 64)
	s.watcher.OnChange(func(change Change) {
		select {
		case s.changeCh <- change:
		default:
		}
	})

	go s.watcher.Start(ctx)
	go s.processChanges(ctx)

	s.httpServer = &http.Server{
		Addr:    s.config.DevAddress(),
		Handler: s.Handler(),
	}

	s.log("Server running at %s", s.config.DevURL())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		if err != nil {
			return errors.New("E401").Wrap(err)
		}
		return nil
	}
}

// Stop stops the development server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.running = false
	s.watcher.Stop()
	if s.reloadServer != nil {
		s.reloadServer.Close()
	}

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// Handler returns the HTTP handler for the dev server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	if s.reloadServer != nil {
		r.Get(ReloadPath, s.reloadServer.HandleWebSocket)
	}
	if s.options.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.options.Registry, promhttp.HandlerOpts{}))
	}
	r.Get("/*", s.serveFile)

	return r
}

// serveFile serves project files, turning .svg requests into modules.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	specifier := urlPath
	if r.URL.RawQuery != "" {
		specifier += "?" + r.URL.RawQuery
	}

	if imp, ok := svg.Classify(specifier, s.svgctx.DefaultMode); ok {
		s.serveSvg(w, r, imp)
		return
	}

	fsPath := s.projectPath(urlPath)
	if strings.EqualFold(filepath.Ext(fsPath), ".html") {
		s.serveHTML(w, r, fsPath)
		return
	}

	http.ServeFile(w, r, fsPath)
}

// serveSvg serves a classified SVG request as an ES module, or as raw
// bytes when the ?raw query is present.
func (s *Server) serveSvg(w http.ResponseWriter, r *http.Request, imp svg.Import) {
	fsPath := s.projectPath(imp.Path)

	if r.URL.Query().Has("raw") {
		w.Header().Set("Content-Type", "image/svg+xml")
		http.ServeFile(w, r, fsPath)
		return
	}

	id := fsPath
	if imp.RawQuery != "" {
		id += "?" + imp.RawQuery
	}

	res, err := s.svgctx.Load(r.Context(), id)
	if err != nil {
		s.serveError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")

	if res.Disposition == svg.Handled {
		code := res.Source.Code
		if imp.Directory {
			// Expansion imports use filesystem paths; rewrite them to
			// server paths so the browser can fetch the entries.
			code = strings.ReplaceAll(code, `import("`+s.svgctx.Root, `import("`)
		}
		w.Write([]byte(code))
		return
	}

	// URL mode defers to the host's asset emission; in dev the asset is
	// the raw endpoint for the same path.
	w.Write([]byte("export default " + quoteJS(imp.Path+"?raw") + ";\n"))
}

// serveHTML serves an HTML file with the reload client injected.
func (s *Server) serveHTML(w http.ResponseWriter, r *http.Request, fsPath string) {
	body, err := os.ReadFile(fsPath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	page := string(body)
	if s.reloadServer != nil {
		if idx := strings.LastIndex(page, "</body>"); idx != -1 {
			page = page[:idx] + DevClientScript + page[idx:]
		} else {
			page += DevClientScript
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// serveError reports a pipeline error to the requester and the error
// overlay of connected browsers.
func (s *Server) serveError(w http.ResponseWriter, err error) {
	msg := err.Error()
	if se, ok := err.(*errors.SvgkitError); ok {
		msg = se.FormatCompact()
	}

	s.logError("%s", msg)
	if s.reloadServer != nil {
		s.reloadServer.NotifyError(msg)
	}

	http.Error(w, msg, http.StatusInternalServerError)
}

// projectPath maps a URL path onto the project root.
func (s *Server) projectPath(urlPath string) string {
	clean := filepath.Clean("/" + strings.TrimPrefix(urlPath, "/"))
	return filepath.Join(s.svgctx.Root, filepath.FromSlash(clean))
}

// processChanges serializes file change handling and coalesces bursts.
func (s *Server) processChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-s.changeCh:
			changes := []Change{change}
			draining := true
			for draining {
				select {
				case next := <-s.changeCh:
					changes = append(changes, next)
				default:
					draining = false
				}
			}
			s.handleChanges(changes)
		}
	}
}

// handleChanges handles a batch of file changes.
func (s *Server) handleChanges(changes []Change) {
	if len(changes) == 0 {
		return
	}

	for _, change := range changes {
		s.log("Changed: %s", change.Path)
		if change.Type == ChangeConfig {
			s.log("Configuration changed; restart the dev server to apply it")
		}
	}

	s.notifyReload()
}

func (s *Server) notifyReload() {
	if !s.reloadEnabled() {
		s.log("Change detected (hot reload disabled)")
		return
	}

	s.reloadServer.ClearError()
	s.reloadServer.NotifyReload()
	if s.options.OnReload != nil {
		s.options.OnReload(s.reloadServer.ClientCount())
	}
	s.log("Reloaded %d browsers", s.reloadServer.ClientCount())
}

func (s *Server) reloadEnabled() bool {
	return s.hotReload && s.reloadServer != nil
}

// quoteJS renders a string as a JS double-quoted literal.
func quoteJS(v string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + replacer.Replace(v) + `"`
}

// log prints a timestamped message when verbose mode is enabled.
func (s *Server) log(format string, args ...any) {
	if !s.options.Verbose {
		return
	}
	timestamp := time.Now().Format("15:04:05")
	fmt.Printf("[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// logError prints a timestamped error message.
func (s *Server) logError(format string, args ...any) {
	timestamp := time.Now().Format("15:04:05")
	fmt.Fprintf(os.Stderr, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}
