package rates

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/x/gov"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r nestera.Registry, ctrl *Controller) {
	r.Handle(pathUpdateMsg, &updateHandler{ctrl: ctrl})
}

type updateHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*updateHandler)(nil)

func (h *updateHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.authorizeUpdate(ctx, db, msg.Caller); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *updateHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	msg, action, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Update(ctx, db, msg.Caller, action); err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{}, nil
}

func (h *updateHandler) validate(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*UpdateMsg, gov.ProposalAction, error) {
	var msg UpdateMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	action, err := msg.Action.Action()
	if err != nil {
		return nil, nil, err
	}
	return &msg, action, nil
}
