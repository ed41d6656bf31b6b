package autosave

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
	"github.com/nestera-labs/nestera/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r nestera.Registry, ctrl *Controller) {
	r.Handle(pathCreateMsg, &createHandler{ctrl: ctrl})
	r.Handle(pathExecuteMsg, &executeHandler{ctrl: ctrl})
	r.Handle(pathCancelMsg, &cancelHandler{ctrl: ctrl})
}

type createHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	var msg CreateMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAuthorized(ctx, h.ctrl.auth, msg.Owner); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *createHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	var msg CreateMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	id, err := h.ctrl.CreateSchedule(ctx, db, msg.Owner, msg.Amount, msg.IntervalSeconds, msg.StartTime)
	if err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{Data: orm.IDKey(id)}, nil
}

type executeHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*executeHandler)(nil)

func (h *executeHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	var msg ExecuteMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.Due(ctx, db, msg.ScheduleID); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *executeHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	var msg ExecuteMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	s, err := h.ctrl.ExecuteDue(ctx, db, msg.ScheduleID)
	if err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{Data: orm.EncodeSequence(uint64(s.NextExecutionTime))}, nil
}

type cancelHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*cancelHandler)(nil)

func (h *cancelHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	var msg CancelMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.cancellable(ctx, db, msg.Owner, msg.ScheduleID); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *cancelHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	var msg CancelMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Cancel(ctx, db, msg.Owner, msg.ScheduleID); err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{}, nil
}
