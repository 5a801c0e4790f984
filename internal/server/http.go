package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mithrel/dragkit/internal/artifact"
	"github.com/mithrel/dragkit/internal/workspace"
)

const maxBody = 8 << 20

// Server exposes the artifact operations over local HTTP for the desktop shell.
type Server struct {
	arts  *artifact.Materializer
	token string
	log   *log.Logger
}

func New(arts *artifact.Materializer, token string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{arts: arts, token: strings.TrimSpace(token), log: logger}
}

// Response is the JSON envelope of every /v1 endpoint.
type Response struct {
	OK      bool              `json:"ok"`
	Path    string            `json:"path,omitempty"`
	Kind    artifact.Kind     `json:"kind,omitempty"`
	Size    int               `json:"size,omitempty"`
	Digest  string            `json:"digest,omitempty"`
	Entries []workspace.Entry `json:"entries,omitempty"`
	Msg     string            `json:"msg,omitempty"`
}

type bookmarkRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type cleanupRequest struct {
	Path string `json:"path"`
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/bookmark", s.auth(post(s.handleBookmark)))
	mux.HandleFunc("/v1/snapshot", s.auth(post(s.handleSnapshot)))
	mux.HandleFunc("/v1/note", s.auth(post(s.handleNote)))
	mux.HandleFunc("/v1/marker", s.auth(post(s.handleMarker)))
	mux.HandleFunc("/v1/cleanup", s.auth(post(s.handleCleanup)))
	mux.HandleFunc("/v1/artifacts", s.auth(s.handleList))
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Router(), ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Printf("serving artifacts api on %s", ln.Addr())
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			next.ServeHTTP(w, r)
			return
		}
		got := r.Header.Get("Authorization")
		if !strings.HasPrefix(got, "Bearer ") || !tokenMatches(strings.TrimSpace(strings.TrimPrefix(got, "Bearer ")), s.token) {
			writeJSON(w, http.StatusUnauthorized, Response{Msg: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	}
}

func tokenMatches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func post(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, Response{Msg: "method not allowed"})
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (s *Server) handleBookmark(w http.ResponseWriter, r *http.Request) {
	var req bookmarkRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, Response{Msg: "url is required"})
		return
	}
	res, err := s.arts.CreateBookmarkFile(req.URL, req.Title)
	s.respond(w, res, err)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var req artifact.Snapshot
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, Response{Msg: "url is required"})
		return
	}
	res, err := s.arts.CreateSnapshotFile(req)
	s.respond(w, res, err)
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := s.arts.CreateNoteFile(req.Title, req.Content)
	s.respond(w, res, err)
}

func (s *Server) handleMarker(w http.ResponseWriter, r *http.Request) {
	res, err := s.arts.CreateMarkerFile()
	s.respond(w, res, err)
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	var req cleanupRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.arts.CleanupFile(req.Path); err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Msg: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Response{OK: true})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Msg: "method not allowed"})
		return
	}
	entries, err := s.arts.Workspace().List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Msg: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Response{OK: true, Entries: entries})
}

func (s *Server) respond(w http.ResponseWriter, res artifact.Result, err error) {
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Msg: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Response{OK: true, Path: res.Path, Kind: res.Kind, Size: res.Size, Digest: res.Digest})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Msg: "bad json: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
