package rates

import (
	"testing"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/gconf"
	"github.com/nestera-labs/nestera/store"
	"github.com/nestera-labs/nestera/weavetest"
	"github.com/nestera-labs/nestera/weavetest/assert"
	"github.com/nestera-labs/nestera/x/gov"
)

func TestUpdateHandler(t *testing.T) {
	admin := weavetest.NewCondition()
	alice := weavetest.NewCondition()

	cases := map[string]struct {
		msg            nestera.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantPaused     bool
	}{
		"pause": {
			msg:        &UpdateMsg{Caller: admin.Address(), Action: &gov.ActionRecord{Kind: gov.ActionPause}},
			wantPaused: true,
		},
		"not the admin": {
			msg:            &UpdateMsg{Caller: alice.Address(), Action: &gov.ActionRecord{Kind: gov.ActionPause}},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"missing action": {
			msg:            &UpdateMsg{Caller: admin.Address()},
			wantCheckErr:   errors.ErrEmpty,
			wantDeliverErr: errors.ErrEmpty,
		},
		"rate out of range": {
			msg:            &UpdateMsg{Caller: admin.Address(), Action: &gov.ActionRecord{Kind: gov.ActionSetGoalRate, Rate: 1 << 20}},
			wantDeliverErr: errors.ErrInvalidPlanConfig,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.Nil(t, gconf.Save(db, "gov", &gov.Configuration{Admin: admin.Address()}))

			rt := &weavetest.Registry{}
			RegisterRoutes(rt, NewController(&weavetest.Auth{Signers: []nestera.Condition{admin, alice}}))
			h := rt.Handler(pathUpdateMsg)
			tx := &weavetest.Tx{Msg: tc.msg}
			ctx := weavetest.CtxAt(1)

			cache := db.CacheWrap()
			_, err := h.Check(ctx, cache, tx)
			assert.IsErr(t, tc.wantCheckErr, err)
			cache.Discard()

			_, err = h.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantDeliverErr, err)

			paused, err := IsPaused(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantPaused, paused)
		})
	}
}

func TestGenesis(t *testing.T) {
	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(nestera.Options{}, db))
	opts := nestera.Options{"conf": []byte(`{"rates": {"flexi_rate": 400, "lock_rates": [{"duration": 60, "rate": 700}]}}`)}
	assert.Nil(t, ini.FromGenesis(opts, db))

	r, err := NewController(&weavetest.Auth{}).Rates(db)
	assert.Nil(t, err)
	assert.Equal(t, &Rates{FlexiRate: 400, LockRates: []*LockRate{{Duration: 60, Rate: 700}}}, r)
}
