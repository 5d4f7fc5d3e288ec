// Package export renders navigator storyboards and serves them locally.
//
// This file implements a local preview server for a storyboard directory.
// It serves files with no-cache headers and auto-opens the browser.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"
)

// DefaultPreviewPort is the first port tried by the preview server.
const DefaultPreviewPort = 9000

// PreviewPortRangeStart and PreviewPortRangeEnd bound port auto-selection.
const (
	PreviewPortRangeStart = 9000
	PreviewPortRangeEnd   = 9100
)

// PreviewServer serves a storyboard directory locally for previewing.
type PreviewServer struct {
	dir    string
	port   int
	server *http.Server
}

// NewPreviewServer creates a new preview server for the given directory.
func NewPreviewServer(dir string, port int) *PreviewServer {
	return &PreviewServer{
		dir:  dir,
		port: port,
	}
}

// Port returns the port the server is running on.
func (p *PreviewServer) Port() int {
	return p.port
}

// URL returns the full URL of the preview server.
func (p *PreviewServer) URL() string {
	return fmt.Sprintf("http://localhost:%d", p.port)
}

// checkDir verifies the directory holds a rendered storyboard.
func (p *PreviewServer) checkDir() error {
	if _, err := os.Stat(p.dir); os.IsNotExist(err) {
		return fmt.Errorf("storyboard directory does not exist: %s", p.dir)
	}
	if _, err := os.Stat(filepath.Join(p.dir, "index.html")); os.IsNotExist(err) {
		return fmt.Errorf("no index.html found in storyboard: %s", p.dir)
	}
	return nil
}

// Handler returns the HTTP handler serving the storyboard.
func (p *PreviewServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", noCacheMiddleware(http.FileServer(http.Dir(p.dir))))
	mux.HandleFunc("/__preview__/status", p.statusHandler)
	return mux
}

// Start starts the preview server and blocks until stopped.
func (p *PreviewServer) Start() error {
	if err := p.checkDir(); err != nil {
		return err
	}
	p.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", p.port),
		Handler:           p.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return p.server.ListenAndServe()
}

// Stop gracefully stops the preview server.
func (p *PreviewServer) Stop() error {
	if p.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}

type previewStatus struct {
	Status    string `json:"status"`
	Port      int    `json:"port"`
	Dir       string `json:"dir"`
	HasIndex  bool   `json:"has_index"`
	Frames    int    `json:"frames"`
	FileCount int    `json:"file_count"`
}

// statusHandler returns the preview server status as JSON.
func (p *PreviewServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	st := previewStatus{Status: "running", Port: p.port, Dir: p.dir, HasIndex: true}
	if _, err := os.Stat(filepath.Join(p.dir, "index.html")); os.IsNotExist(err) {
		st.HasIndex = false
	}
	if data, err := os.ReadFile(filepath.Join(p.dir, ManifestName)); err == nil {
		var sb Storyboard
		if json.Unmarshal(data, &sb) == nil {
			st.Frames = len(sb.Frames)
		}
	}
	filepath.Walk(p.dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			st.FileCount++
		}
		return nil
	})
	json.NewEncoder(w).Encode(st)
}

// noCacheMiddleware adds headers to prevent browser caching.
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FindAvailablePort finds an available port in the given range.
func FindAvailablePort(start, end int) (int, error) {
	for port := start; port <= end; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, end)
}

// OpenInBrowser opens url with the platform's default handler.
func OpenInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	// Dir is the storyboard directory to serve
	Dir string

	// Port is the port to serve on (0 for auto-select)
	Port int

	// OpenBrowser determines whether to auto-open a browser
	OpenBrowser bool

	// Quiet suppresses status messages
	Quiet bool
}

// DefaultPreviewConfig returns sensible defaults for preview configuration.
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Port:        0, // Auto-select
		OpenBrowser: true,
	}
}

// StartPreviewWithConfig serves config.Dir until SIGINT/SIGTERM.
func StartPreviewWithConfig(config PreviewConfig) error {
	port := config.Port
	if port == 0 {
		var err error
		port, err = FindAvailablePort(PreviewPortRangeStart, PreviewPortRangeEnd)
		if err != nil {
			return fmt.Errorf("could not find available port: %w", err)
		}
	}

	server := NewPreviewServer(config.Dir, port)
	if err := server.checkDir(); err != nil {
		return err
	}

	if config.OpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			url := server.URL()
			if err := OpenInBrowser(url); err != nil && !config.Quiet {
				fmt.Printf("Could not open browser: %v\n", err)
				fmt.Printf("Open %s in your browser\n", url)
			}
		}()
	}

	if !config.Quiet {
		fmt.Printf("\nPreview server running at %s\n", server.URL())
		fmt.Printf("Serving: %s\n", config.Dir)
		fmt.Print("\nPress Ctrl+C to stop\n\n")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-stop:
		if !config.Quiet {
			fmt.Println("\nShutting down preview server...")
		}
		return server.Stop()
	case err := <-errChan:
		return err
	}
}
