package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/notekeeper/internal/client/api"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/gorilla/mux"
)

var (
	adminUser = session.User{ID: 1, Name: "Administrador", Email: "admin@example.com", Role: session.Role{ID: 1, Name: session.RoleAdmin}}
	plainUser = session.User{ID: 2, Name: "Usuario Demo", Email: "user@example.com", Role: session.Role{ID: 2, Name: session.RoleUser}}
)

// fakeAPI is an in-memory stand-in for the notes REST API.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []string
	expired bool
	notes   []api.Note
	cats    []api.Category
	nextID  int64
	bodies  map[string]map[string]any
}

func newFakeAPI(t *testing.T) (*fakeAPI, string) {
	t.Helper()
	f := &fakeAPI{
		cats:   []api.Category{{ID: 1, Name: "Work", UserID: 2}, {ID: 2, Name: "Home", UserID: 2}},
		nextID: 100,
		bodies: map[string]map[string]any{},
	}
	srv := httptest.NewServer(f.routes())
	t.Cleanup(srv.Close)
	return f, srv.URL
}

func (f *fakeAPI) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(f.record)

	r.HandleFunc("/auth/login", f.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", f.message("registered")).Methods(http.MethodPost)
	r.HandleFunc("/auth/activate-account", f.message("")).Methods(http.MethodPost)
	r.HandleFunc("/auth/reset-password", f.message("")).Methods(http.MethodPost)
	r.HandleFunc("/auth/confirm-reset-password", f.message("")).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(f.auth)
	authed.HandleFunc("/auth/change-password", f.message("")).Methods(http.MethodPut)
	authed.HandleFunc("/users", f.listUsers).Methods(http.MethodGet)
	authed.HandleFunc("/users/me", f.me).Methods(http.MethodGet)
	authed.HandleFunc("/notes", f.listNotes).Methods(http.MethodGet)
	authed.HandleFunc("/notes", f.createNote).Methods(http.MethodPost)
	authed.HandleFunc("/notes/{id}", f.deleteNote).Methods(http.MethodDelete)
	authed.HandleFunc("/notes/{id}", f.message("")).Methods(http.MethodPut)
	authed.HandleFunc("/categories", f.listCategories).Methods(http.MethodGet)
	authed.HandleFunc("/categories", f.message("")).Methods(http.MethodPost)
	return r
}

func (f *fakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			call += "?" + r.URL.RawQuery
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		f.calls = append(f.calls, call)
		f.bodies[call] = body
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *fakeAPI) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		expired := f.expired
		f.mu.Unlock()

		if expired || !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer tok-") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	body := f.bodies["POST /auth/login"]
	f.mu.Unlock()

	switch {
	case body["email"] == adminUser.Email && body["password"] == "Admin2024!":
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok-admin", "user": adminUser})
	case body["email"] == plainUser.Email && body["password"] == "User2024!":
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok-user", "user": plainUser})
	default:
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	}
}

func (f *fakeAPI) message(msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": msg})
	}
}

func (f *fakeAPI) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": []session.User{adminUser, plainUser}})
}

func (f *fakeAPI) me(w http.ResponseWriter, r *http.Request) {
	u := plainUser
	if r.Header.Get("Authorization") == "Bearer tok-admin" {
		u = adminUser
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": u})
}

func (f *fakeAPI) listNotes(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"data": append([]api.Note{}, f.notes...)})
}

func (f *fakeAPI) createNote(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body := f.bodies["POST /notes"]
	catID := int64(body["category"].(float64))
	f.nextID++
	f.notes = append(f.notes, api.Note{
		ID:          f.nextID,
		Name:        body["name"].(string),
		Description: body["description"].(string),
		Category:    api.CategoryRef{ID: catID, Name: f.categoryName(catID)},
	})
	writeJSON(w, http.StatusCreated, map[string]any{"message": "created"})
}

func (f *fakeAPI) deleteNote(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.notes[:0]
	for _, n := range f.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	f.notes = kept
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (f *fakeAPI) listCategories(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"data": f.cats})
}

func (f *fakeAPI) categoryName(id int64) string {
	for _, c := range f.cats {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func (f *fakeAPI) seedNotes(notes ...api.Note) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, notes...)
}

func (f *fakeAPI) expire() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expired = true
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) has(call string) bool {
	return f.count(call) > 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
