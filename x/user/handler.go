package user

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r nestera.Registry, ctrl *Controller) {
	r.Handle(pathRegisterUserMsg, &registerHandler{ctrl: ctrl})
}

type registerHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*registerHandler)(nil)

func (h *registerHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *registerHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Register(ctx, db, msg.Address); err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{Data: msg.Address}, nil
}

func (h *registerHandler) validate(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*RegisterUserMsg, error) {
	var msg RegisterUserMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAuthorized(ctx, h.ctrl.auth, msg.Address); err != nil {
		return nil, err
	}
	return &msg, nil
}
