package weavetest

import "github.com/nestera-labs/nestera"

// Handler is a mock implementation of the nestera.Handler interface.
// Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult nestera.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult nestera.DeliverResult
	DeliverErr    error

	// Write if set is stored in the database by every call, before
	// returning the result.
	Write *Pair
}

// Pair is a single key value pair.
type Pair struct {
	Key, Value []byte
}

var _ nestera.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) write(db nestera.KVStore) error {
	if h.Write == nil {
		return nil
	}
	return db.Set(h.Write.Key, h.Write.Value)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// PanicHandler panics with the given value on every call.
type PanicHandler struct {
	Value interface{}
}

var _ nestera.Handler = PanicHandler{}

func (p PanicHandler) Check(nestera.Context, nestera.KVStore, nestera.Tx) (*nestera.CheckResult, error) {
	panic(p.Value)
}

func (p PanicHandler) Deliver(nestera.Context, nestera.KVStore, nestera.Tx) (*nestera.DeliverResult, error) {
	panic(p.Value)
}

// Registry is a nestera.Registry that collects registered handlers so a
// test can call them by path.
type Registry struct {
	handlers map[string]nestera.Handler
}

var _ nestera.Registry = (*Registry)(nil)

func (r *Registry) Handle(path string, h nestera.Handler) {
	if r.handlers == nil {
		r.handlers = make(map[string]nestera.Handler)
	}
	if _, ok := r.handlers[path]; ok {
		panic("handler already registered for path " + path)
	}
	r.handlers[path] = h
}

// Handler returns the handler registered for given path or panics.
func (r *Registry) Handler(path string) nestera.Handler {
	h, ok := r.handlers[path]
	if !ok {
		panic("no handler registered for path " + path)
	}
	return h
}
