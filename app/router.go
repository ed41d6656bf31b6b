package app

import (
	"fmt"
	"regexp"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]nestera.Handler
}

var _ nestera.Registry = (*Router)(nil)
var _ nestera.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]nestera.Handler, 16),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered or if the path is not valid.
func (r *Router) Handle(path string, h nestera.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If no path is found,
// returns a noSuchPath Handler. Always returns a non-nil Handler.
func (r *Router) Handler(path string) nestera.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler(path)
}

// Len returns the number of registered routes.
func (r *Router) Len() int {
	return len(r.routes)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx nestera.Context, store nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	path, err := msgPath(tx)
	if err != nil {
		return nil, err
	}
	return r.Handler(path).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx nestera.Context, store nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	path, err := msgPath(tx)
	if err != nil {
		return nil, err
	}
	return r.Handler(path).Deliver(ctx, store, tx)
}

func msgPath(tx nestera.Tx) (string, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return "", errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return "", errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
	return msg.Path(), nil
}

// noSuchPathHandler is returned by the router for unknown paths.
type noSuchPathHandler string

var _ nestera.Handler = noSuchPathHandler("")

func (path noSuchPathHandler) Check(nestera.Context, nestera.KVStore, nestera.Tx) (*nestera.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path noSuchPathHandler) Deliver(nestera.Context, nestera.KVStore, nestera.Tx) (*nestera.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
