package app

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/events"
	"github.com/nestera-labs/nestera/x"
	"github.com/nestera-labs/nestera/x/autosave"
	"github.com/nestera-labs/nestera/x/flexi"
	"github.com/nestera-labs/nestera/x/gov"
	"github.com/nestera-labs/nestera/x/lock"
	"github.com/nestera-labs/nestera/x/rates"
	"github.com/nestera-labs/nestera/x/sigs"
	"github.com/nestera-labs/nestera/x/user"
	"github.com/nestera-labs/nestera/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Sink returns the notification sink of a running node: every event is
// logged with the transaction logger and counted. Counters are registered
// with reg.
func Sink(reg prometheus.Registerer) events.Sink {
	return events.Fanout(
		events.LogSink{},
		events.NewMetricsSink(reg),
	)
}

// Extensions holds the controllers of all ledger extensions, wired to each
// other.
type Extensions struct {
	Users    *user.Controller
	Flexi    *flexi.Controller
	Locks    *lock.Controller
	AutoSave *autosave.Controller
	Rates    *rates.Controller
	Gov      *gov.Controller
}

// NewExtensions creates all controllers. Flexible balances are both the
// deposit effect of scheduled deposits and the source of voting power.
// Executed governance proposals change the rate table, which sets the rate
// of new locked deposits. A nil sink drops all governance events.
func NewExtensions(auth x.Authenticator, sink events.Sink) *Extensions {
	users := user.NewController(auth)
	flexiCtrl := flexi.NewController(auth, users)
	ratesCtrl := rates.NewController(auth)
	return &Extensions{
		Users:    users,
		Flexi:    flexiCtrl,
		Locks:    lock.NewController(auth, users).WithRateSource(ratesCtrl),
		AutoSave: autosave.NewController(auth, users, flexiCtrl),
		Rates:    ratesCtrl,
		Gov:      gov.NewController(auth, flexiCtrl, sink, ratesCtrl),
	}
}

// Router returns a router dispatching to the handlers of all extensions.
func (e *Extensions) Router() *Router {
	r := NewRouter()
	user.RegisterRoutes(r, e.Users)
	flexi.RegisterRoutes(r, e.Flexi)
	lock.RegisterRoutes(r, e.Locks)
	autosave.RegisterRoutes(r, e.AutoSave)
	rates.RegisterRoutes(r, e.Rates)
	gov.RegisterRoutes(r, e.Gov)
	return r
}

// Chain returns a chain of decorators, to handle logging, recovery,
// authentication and the pause switch.
func Chain() Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		sigs.NewDecorator(),
		rates.NewPauseDecorator("user", "flexi", "lock", "autosave"),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Stack wires up the router of given extensions with the standard
// decorator chain.
func Stack(e *Extensions) nestera.Handler {
	return Chain().WithHandler(e.Router())
}

// Decoder returns a transaction decoder that knows every message of the
// ledger extensions.
func Decoder() *TxDecoder {
	return NewTxDecoder().Register(
		&user.RegisterUserMsg{},
		&flexi.DepositMsg{},
		&flexi.WithdrawMsg{},
		&lock.CreateMsg{},
		&lock.WithdrawMsg{},
		&autosave.CreateMsg{},
		&autosave.ExecuteMsg{},
		&autosave.CancelMsg{},
		&rates.UpdateMsg{},
		&gov.VotingConfigMsg{},
		&gov.ActivateMsg{},
		&gov.CreateProposalMsg{},
		&gov.VoteMsg{},
		&gov.ExecuteMsg{},
	)
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() nestera.Initializer {
	return nestera.ChainInitializers(
		&user.Initializer{},
		&lock.Initializer{},
		&rates.Initializer{},
		&gov.Initializer{},
	)
}
