package lock

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
	"github.com/nestera-labs/nestera/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r nestera.Registry, ctrl *Controller) {
	r.Handle(pathCreateMsg, &createHandler{ctrl: ctrl})
	r.Handle(pathWithdrawMsg, &withdrawHandler{ctrl: ctrl})
}

type createHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *createHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.CreateLockedDeposit(ctx, db, msg.Owner, msg.Amount, msg.Duration)
	if err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{Data: orm.IDKey(id)}, nil
}

func (h *createHandler) validate(ctx nestera.Context, tx nestera.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAuthorized(ctx, h.ctrl.auth, msg.Owner); err != nil {
		return nil, err
	}
	return &msg, nil
}

type withdrawHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*withdrawHandler)(nil)

func (h *withdrawHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	var msg WithdrawMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.Withdrawable(ctx, db, msg.Owner, msg.LockID); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *withdrawHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	var msg WithdrawMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	payout, err := h.ctrl.Withdraw(ctx, db, msg.Owner, msg.LockID)
	if err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{Data: orm.EncodeSequence(uint64(payout))}, nil
}
