package gov

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
	"github.com/nestera-labs/nestera/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r nestera.Registry, ctrl *Controller) {
	r.Handle(pathVotingConfigMsg, &votingConfigHandler{ctrl: ctrl})
	r.Handle(pathActivateMsg, &activateHandler{ctrl: ctrl})
	r.Handle(pathCreateProposalMsg, &createProposalHandler{ctrl: ctrl})
	r.Handle(pathVoteMsg, &voteHandler{ctrl: ctrl})
	r.Handle(pathExecuteMsg, &executeHandler{ctrl: ctrl})
}

type votingConfigHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*votingConfigHandler)(nil)

func (h *votingConfigHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	var msg VotingConfigMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAuthorized(ctx, h.ctrl.auth, msg.Admin); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *votingConfigHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	var msg VotingConfigMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.InitVotingConfig(ctx, db, msg.Admin, *msg.Config); err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{}, nil
}

type activateHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*activateHandler)(nil)

func (h *activateHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	var msg ActivateMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAuthorized(ctx, h.ctrl.auth, msg.Admin); err != nil {
		return nil, err
	}
	if err := requireAdmin(db, msg.Admin); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *activateHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	var msg ActivateMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.ActivateGovernance(ctx, db, msg.Admin); err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{}, nil
}

type createProposalHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*createProposalHandler)(nil)

func (h *createProposalHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	var msg CreateProposalMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAuthorized(ctx, h.ctrl.auth, msg.Creator); err != nil {
		return nil, err
	}
	if _, err := LoadVotingConfig(db); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *createProposalHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	var msg CreateProposalMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	var (
		id  uint64
		err error
	)
	if msg.Action == nil {
		id, err = h.ctrl.CreateProposal(ctx, db, msg.Creator, msg.Description)
	} else {
		action, aerr := msg.Action.Action()
		if aerr != nil {
			return nil, aerr
		}
		id, err = h.ctrl.CreateActionProposal(ctx, db, msg.Creator, msg.Description, action)
	}
	if err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{Data: orm.IDKey(id)}, nil
}

type voteHandler struct {
	ctrl *Controller
}

var _ nestera.Handler = (*voteHandler)(nil)

func (h *voteHandler) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.CheckResult, error) {
	var msg VoteMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, _, err := h.ctrl.prepareVote(ctx, db, msg.Voter, msg.ProposalID, msg.Option); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *voteHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	var msg VoteMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.CastVoteOption(ctx, db, msg.Voter, msg.ProposalID, msg.Option); err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{}, nil
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
	if _, err := h.ctrl.Executable(ctx, db, msg.ProposalID); err != nil {
		return nil, err
	}
	return &nestera.CheckResult{}, nil
}

func (h *executeHandler) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx) (*nestera.DeliverResult, error) {
	var msg ExecuteMsg
	if err := nestera.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.ExecuteProposal(ctx, db, msg.ProposalID); err != nil {
		return nil, err
	}
	return &nestera.DeliverResult{}, nil
}
