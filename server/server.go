// Package server publishes a Library over HTTP.
//
// Rooms in responses are replaced by their bookmarks, so identifiers stay
// short enough for a URL; every route that takes an identifier accepts
// either form.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	babel "github.com/Redundancy/go-babel"
	"github.com/Redundancy/go-babel/address"
	"github.com/Redundancy/go-babel/alphabet"
	"github.com/Redundancy/go-babel/bookmark"
	"github.com/Redundancy/go-babel/engine"
	"github.com/Redundancy/go-babel/search"
)

// maxBodySize leaves room for a whole book of search text plus JSON framing
const maxBodySize = 4 << 20

const shutdownTimeout = 10 * time.Second

type Server struct {
	lib    *babel.Library
	logger *slog.Logger
	mux    *http.ServeMux
}

func New(lib *babel.Library, logger *slog.Logger) *Server {
	if logger == nil {
		panic("server: logger is required")
	}

	s := &Server{
		lib:    lib,
		logger: logger,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /ref/{identifier}", s.handleRef)
	s.mux.HandleFunc("GET /fullref/{identifier}", s.handleFullRef)
	s.mux.HandleFunc("POST /get-uid", s.handleGetUID)
	s.mux.HandleFunc("POST /search", s.handleSearch)
	s.mux.HandleFunc("GET /random", s.handleRandom)

	return s
}

// statusRecorder keeps the response status for the request log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	start := time.Now()
	recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

	s.mux.ServeHTTP(recorder, request)

	s.logger.Info("request",
		"method", request.Method,
		"path", address.ShortenRoom(request.URL.Path),
		"status", recorder.status,
		"elapsed", time.Since(start),
	)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %v: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- httpServer.Serve(listener)
	}()

	s.logger.Info("listening", "address", listener.Addr().String())

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// pageResponse is a page with every room replaced by its bookmark
type pageResponse struct {
	*engine.PageResult
	Bookmark string `json:"bookmark"`
}

func (s *Server) handleRef(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	page, err := s.lib.Page(ctx, request.PathValue("identifier"))
	if err != nil {
		s.writeError(writer, err)
		return
	}

	b, err := s.lib.Bookmark(ctx, page.Room)
	if err != nil {
		s.writeError(writer, err)
		return
	}

	response := pageResponse{PageResult: page, Bookmark: b.Hash}

	for _, identifier := range []*string{&page.Identifier, &page.Prev, &page.Next} {
		if *identifier, err = s.lib.Shorten(ctx, *identifier); err != nil {
			s.writeError(writer, err)
			return
		}
	}

	// the full room can run to a megabyte; fetch it from /fullref
	page.Room = b.Hash

	s.writeJSON(writer, http.StatusOK, response)
}

func (s *Server) handleFullRef(writer http.ResponseWriter, request *http.Request) {
	full, err := bookmark.Expand(request.Context(), s.lib.Bookmarks, request.PathValue("identifier"))
	if err != nil {
		s.writeError(writer, err)
		return
	}

	if _, err := address.Parse(full); err != nil {
		s.writeError(writer, err)
		return
	}

	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.Write([]byte(full))
}

type uidRequest struct {
	Identifier string `json:"identifier"`
}

func (s *Server) handleGetUID(writer http.ResponseWriter, request *http.Request) {
	var body uidRequest
	if !s.readJSON(writer, request, &body) {
		return
	}

	if _, err := address.Parse(body.Identifier); err != nil {
		s.writeError(writer, err)
		return
	}

	short, err := s.lib.Shorten(request.Context(), body.Identifier)
	if err != nil {
		s.writeError(writer, err)
		return
	}

	s.writeJSON(writer, http.StatusOK, uidRequest{Identifier: short})
}

type searchRequest struct {
	Content string `json:"content"`
	Mode    string `json:"mode"`
	Page    int    `json:"page,omitempty"`
}

func (s *Server) handleSearch(writer http.ResponseWriter, request *http.Request) {
	var body searchRequest
	if !s.readJSON(writer, request, &body) {
		return
	}

	result, err := s.lib.Search(search.Query{
		Text: body.Content,
		Mode: search.Mode(body.Mode),
		Page: body.Page,
	})
	if err != nil {
		s.writeError(writer, err)
		return
	}

	if result.Identifier, err = s.lib.Shorten(request.Context(), result.Identifier); err != nil {
		s.writeError(writer, err)
		return
	}

	s.writeJSON(writer, http.StatusOK, result)
}

func (s *Server) handleRandom(writer http.ResponseWriter, request *http.Request) {
	short, err := s.lib.Shorten(request.Context(), s.lib.Random())
	if err != nil {
		s.writeError(writer, err)
		return
	}

	http.Redirect(writer, request, "/ref/"+url.PathEscape(short), http.StatusFound)
}

func (s *Server) readJSON(writer http.ResponseWriter, request *http.Request, into any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodySize))

	if err := decoder.Decode(into); err != nil {
		s.writeJSON(writer, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if err := json.NewEncoder(writer).Encode(value); err != nil {
		s.logger.Warn("writing response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// StatusOf maps library errors to HTTP status codes
func StatusOf(err error) int {
	switch {
	case errors.Is(err, address.ErrMalformedIdentifier),
		errors.Is(err, address.ErrOutOfRange),
		errors.Is(err, alphabet.ErrInvalidContentCharacter),
		errors.Is(err, search.ErrQueryTooLong),
		errors.Is(err, search.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, bookmark.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(writer http.ResponseWriter, err error) {
	status := StatusOf(err)

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		s.writeJSON(writer, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	s.writeJSON(writer, status, errorResponse{Error: err.Error()})
}
