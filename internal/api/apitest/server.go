// Package apitest provides an in-memory formbot service for tests.
package apitest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Token is the bearer token the fake service accepts by default.
const Token = "test-token"

// Call records one request received by the fake service.
type Call struct {
	Method string
	Path   string
	Body   map[string]any
}

// String renders the call as "METHOD /path".
func (c Call) String() string {
	return c.Method + " " + c.Path
}

// Folder is a stored folder.
type Folder struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Form is a stored form.
type Form struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Server is a fake formbot service backed by httptest.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	token    string
	username string
	folders  []Folder
	forms    []Form
	users    map[string]string
	invited  []string
	calls    []Call
	failures map[string]int
	nextID   int
}

// NewServer starts a fake service that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		token:    Token,
		username: "ada",
		users:    map[string]string{},
		failures: map[string]int{},
	}

	r := chi.NewRouter()
	r.Use(s.record, s.authenticate, s.injectFailures)
	r.Get("/user/dashboard", s.handleProfile)
	r.Post("/user/return", s.handleResolve)
	r.Get("/folder/all", s.handleListFolders)
	r.Post("/folder/create", s.handleCreateFolder)
	r.Delete("/folder/delete/{id}", s.handleDeleteFolder)
	r.Put("/folder/update", s.handleInvite)
	r.Get("/form/all", s.handleListForms)
	r.Delete("/form/delete/{id}", s.handleDeleteForm)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// SetUsername changes the profile username.
func (s *Server) SetUsername(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = name
}

// AddFolder seeds a folder and returns its id.
func (s *Server) AddFolder(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newIDLocked("F")
	s.folders = append(s.folders, Folder{ID: id, Name: name})
	return id
}

// AddForm seeds a form and returns its id.
func (s *Server) AddForm(name, typ string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newIDLocked("T")
	s.forms = append(s.forms, Form{ID: id, Name: name, Type: typ})
	return id
}

// AddUser registers an email the resolve endpoint can find.
func (s *Server) AddUser(email, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = id
}

// Fail makes every request matching "METHOD /path-prefix" answer with status.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// Folders returns the stored folders.
func (s *Server) Folders() []Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Folder(nil), s.folders...)
}

// Forms returns the stored forms.
func (s *Server) Forms() []Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Form(nil), s.forms...)
}

// Invited returns the user ids attached through the invite endpoint.
func (s *Server) Invited() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.invited...)
}

// Calls returns every request received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallStrings returns Calls rendered as "METHOD /path".
func (s *Server) CallStrings() []string {
	calls := s.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// CountCalls returns how many requests matched "METHOD /path-prefix".
func (s *Server) CountCalls(route string) int {
	n := 0
	for _, c := range s.Calls() {
		if strings.HasPrefix(c.String(), route) {
			n++
		}
	}
	return n
}

// ResetCalls forgets the recorded requests.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) newIDLocked(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := Call{Method: r.Method, Path: r.URL.Path}
		if r.Body != nil && r.ContentLength != 0 {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				call.Body = body
			}
		}
		s.mu.Lock()
		s.calls = append(s.calls, call)
		s.mu.Unlock()

		// Handlers read the decoded body from the call log.
		next.ServeHTTP(w, r.WithContext(withBody(r.Context(), call.Body)))
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		want := "Bearer " + s.token
		s.mu.Unlock()
		if r.Header.Get("Authorization") != want {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		s.mu.Lock()
		status := 0
		for prefix, st := range s.failures {
			if strings.HasPrefix(route, prefix) {
				status = st
				break
			}
		}
		s.mu.Unlock()
		if status != 0 {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	name := s.username
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"username": name})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	email, _ := bodyFrom(r.Context())["email"].(string)
	s.mu.Lock()
	id, ok := s.users[email]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": map[string]string{"id": id}})
}

func (s *Server) handleListFolders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": s.Folders()})
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	name, _ := bodyFrom(r.Context())["name"].(string)
	if strings.TrimSpace(name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "name is required"})
		return
	}
	s.mu.Lock()
	folder := Folder{ID: s.newIDLocked("F"), Name: name}
	s.folders = append(s.folders, folder)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, folder)
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.folders {
		if f.ID == id {
			s.folders = append(s.folders[:i], s.folders[i+1:]...)
			writeJSON(w, http.StatusOK, f)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "folder not found"})
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	id, _ := bodyFrom(r.Context())["invitedUser"].(string)
	s.mu.Lock()
	s.invited = append(s.invited, id)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListForms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Forms())
}

func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.forms {
		if f.ID == id {
			s.forms = append(s.forms[:i], s.forms[i+1:]...)
			writeJSON(w, http.StatusOK, f)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "form not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type bodyKey struct{}

func withBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

func bodyFrom(ctx context.Context) map[string]any {
	body, _ := ctx.Value(bodyKey{}).(map[string]any)
	return body
}
