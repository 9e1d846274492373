// Package router decides which screen a location renders for the current
// session. Decisions are pure functions of (Session, location); redirects
// are followed until a screen renders.
package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/gorilla/mux"
)

type Screen string

const (
	ScreenLogin          Screen = "login"
	ScreenRegister       Screen = "register"
	ScreenActivate       Screen = "activate"
	ScreenForgotPassword Screen = "forgot-password"
	ScreenResetPassword  Screen = "reset-password"
	ScreenNotes          Screen = "notes"
	ScreenCategories     Screen = "categories"
	ScreenProfile        Screen = "profile"
	ScreenAdmin          Screen = "admin"
	ScreenNotFound       Screen = "not-found"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	UserHome      = "/dashboard/notes"
	AdminHome     = "/dashboard/admin"
)

// maxRedirects bounds redirect chains; the longest legal one is
// alias -> protected -> login -> home.
const maxRedirects = 8

type kind int

const (
	publicOnly kind = iota // anonymous only; authenticated users go home
	protected              // authenticated only, rendered in the shell
	adminOnly              // protected and role admin
	index                  // shell index: resolves to the role's home
	alias                  // permanent redirect
)

type route struct {
	kind   kind
	screen Screen
	to     string
}

// Target is the outcome of Resolve.
type Target struct {
	Screen Screen
	Path   string
	// Query is kept only when the requested location rendered directly.
	Query url.Values
	// Redirected reports that Path differs from the requested location.
	Redirected bool
	// InShell marks screens rendered under the authenticated shell.
	InShell bool
}

// Location is Path plus the query string, if any.
func (t Target) Location() string {
	if len(t.Query) == 0 {
		return t.Path
	}
	return t.Path + "?" + t.Query.Encode()
}

type Router struct {
	mux    *mux.Router
	routes map[string]route
}

func New() *Router {
	r := &Router{mux: mux.NewRouter(), routes: make(map[string]route)}

	r.add("/", route{kind: publicOnly, screen: ScreenLogin})
	r.add(LoginPath, route{kind: publicOnly, screen: ScreenLogin})
	r.add("/register", route{kind: publicOnly, screen: ScreenRegister})
	r.add("/validation/email", route{kind: publicOnly, screen: ScreenActivate})
	r.add("/forgot-password", route{kind: publicOnly, screen: ScreenForgotPassword})
	r.add("/reset-password", route{kind: publicOnly, screen: ScreenResetPassword})

	r.add(DashboardPath, route{kind: index})
	r.add(UserHome, route{kind: protected, screen: ScreenNotes})
	r.add("/dashboard/categories", route{kind: protected, screen: ScreenCategories})
	r.add("/dashboard/user", route{kind: protected, screen: ScreenProfile})
	r.add(AdminHome, route{kind: adminOnly, screen: ScreenAdmin})

	r.add("/notes", route{kind: alias, to: UserHome})
	r.add("/categories", route{kind: alias, to: "/dashboard/categories"})
	r.add("/user", route{kind: alias, to: "/dashboard/user"})
	r.add("/admin", route{kind: alias, to: AdminHome})

	return r
}

func (r *Router) add(path string, rt route) {
	r.mux.Path(path).Name(path)
	r.routes[path] = rt
}

// Home is the landing location for an authenticated session.
func Home(s session.Session) string {
	if s.IsAdmin() {
		return AdminHome
	}
	return UserHome
}

// Resolve maps a requested location (path with optional query) to the
// screen that renders for s.
func (r *Router) Resolve(s session.Session, location string) Target {
	path, query := split(location)
	redirected := false

	for i := 0; i < maxRedirects; i++ {
		rt, ok := r.match(path)
		if !ok {
			return Target{Screen: ScreenNotFound, Path: path, Redirected: redirected}
		}

		next := r.next(s, rt)
		if next == "" {
			t := Target{
				Screen:     rt.screen,
				Path:       path,
				Redirected: redirected,
				InShell:    rt.kind == protected || rt.kind == adminOnly,
			}
			if !redirected {
				t.Query = query
			}
			return t
		}

		path = next
		redirected = true
	}

	return Target{Screen: ScreenNotFound, Path: path, Redirected: redirected}
}

// next returns where rt redirects for s, or "" when it renders.
func (r *Router) next(s session.Session, rt route) string {
	switch rt.kind {
	case publicOnly:
		if s.Authenticated {
			return Home(s)
		}
	case protected:
		if !s.Authenticated {
			return LoginPath
		}
	case adminOnly:
		if !s.Authenticated {
			return LoginPath
		}
		if !s.IsAdmin() {
			return UserHome
		}
	case index:
		if !s.Authenticated {
			return LoginPath
		}
		return Home(s)
	case alias:
		return rt.to
	}
	return ""
}

func (r *Router) match(path string) (route, bool) {
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: path}}
	var m mux.RouteMatch
	if !r.mux.Match(req, &m) || m.Route == nil {
		return route{}, false
	}
	rt, ok := r.routes[m.Route.GetName()]
	return rt, ok
}

func split(location string) (string, url.Values) {
	u, err := url.Parse(location)
	if err != nil {
		return location, nil
	}
	// paths match case-insensitively; the query keeps its case
	path := strings.ToLower(u.Path)
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	q := u.Query()
	if len(q) == 0 {
		q = nil
	}
	return path, q
}
