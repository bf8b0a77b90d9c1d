package router

import (
	"net/url"
	"strconv"
	"strings"
)

// Match outcome kinds.
const (
	Found = iota
	NotFound
	MethodNotAllowed
)

// Result is the outcome of dispatching a method+path against the table.
type Result struct {
	Kind    int
	Name    string           // route name, set when Kind == Found
	Params  map[string]int64 // extracted path parameters, set when Kind == Found
	Allowed []string         // permitted methods, set when Kind == MethodNotAllowed
}

type segment struct {
	literal string
	param   string // non-empty for a :name placeholder (digit-constrained)
}

type route struct {
	method   string
	pattern  string
	name     string
	segments []segment
}

// Table is the static route table. Routes are registered once at startup and
// matched per request; first-registered wins on any overlap.
type Table struct {
	routes []route
}

func NewTable() *Table {
	return &Table{}
}

// Add registers a route. Patterns use exact segments plus at most one
// :name placeholder, which matches digit sequences only, e.g.
// "/admin/users/:id/edit".
func (t *Table) Add(method, pattern, name string) {
	parts := splitPath(pattern)
	segs := make([]segment, 0, len(parts))
	for _, p := range parts {
		if strings.HasPrefix(p, ":") {
			segs = append(segs, segment{param: strings.TrimPrefix(p, ":")})
		} else {
			segs = append(segs, segment{literal: p})
		}
	}
	t.routes = append(t.routes, route{method: method, pattern: pattern, name: name, segments: segs})
}

// Match resolves a request method and path. The query string is ignored and
// the path is percent-decoded before matching; matching is case-sensitive.
func (t *Table) Match(method, path string) Result {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}
	parts := splitPath(path)

	var allowed []string
	for _, r := range t.routes {
		params, ok := matchSegments(r.segments, parts)
		if !ok {
			continue
		}
		if r.method == method {
			return Result{Kind: Found, Name: r.name, Params: params}
		}
		if !contains(allowed, r.method) {
			allowed = append(allowed, r.method)
		}
	}
	if len(allowed) > 0 {
		return Result{Kind: MethodNotAllowed, Allowed: allowed}
	}
	return Result{Kind: NotFound}
}

// Allowed lists the methods registered for a path, in registration order.
func (t *Table) Allowed(path string) []string {
	res := t.Match("", path)
	return res.Allowed
}

func matchSegments(segs []segment, parts []string) (map[string]int64, bool) {
	if len(segs) != len(parts) {
		return nil, false
	}
	var params map[string]int64
	for i, s := range segs {
		if s.param == "" {
			if s.literal != parts[i] {
				return nil, false
			}
			continue
		}
		if !isDigits(parts[i]) {
			return nil, false
		}
		v, err := strconv.ParseInt(parts[i], 10, 64)
		if err != nil {
			return nil, false
		}
		if params == nil {
			params = make(map[string]int64, 1)
		}
		params[s.param] = v
	}
	return params, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
