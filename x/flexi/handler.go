package flexi

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r nestera.Registry, ctrl *Controller) {
	r.Handle(pathDepositMsg, &depositHandler{ctrl: ctrl})
	r.Handle(pathWithdrawMsg, &withdrawHandler{ctrl: ctrl})
}

type depositHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*depositHandler)(nil)

func (h *depositHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *depositHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Deposit(db, msg.Owner, msg.Amount); err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{}, nil
}

func (h *depositHandler) validate(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*DepositMsg, error) {
	var msg DepositMsg
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
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	acc, err := h.ctrl.Account(db, msg.Owner)
	if err != nil {
		return nil, err
	}
	if acc.Balance < msg.Amount {
		return nil, errors.Wrap(errors.ErrInsufficientBalance, "balance too low")
	}
	return &nestera.CheckResult{}, nil
}

func (h *withdrawHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Withdraw(ctx, db, msg.Owner, msg.Amount); err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{}, nil
}

func (h *withdrawHandler) validate(ctx nestera.Context, tx nestera.Tx) (*WithdrawMsg, error) {
	var msg WithdrawMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAuthorized(ctx, h.ctrl.auth, msg.Owner); err != nil {
		return nil, err
	}
	return &msg, nil
}
