package user

import (
	"context"
	"math"
	"testing"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/store"
	"github.com/nestera-labs/nestera/weavetest"
	"github.com/nestera-labs/nestera/weavetest/assert"
)

func TestRegister(t *testing.T) {
	alice := weavetest.NewCondition()
	bobby := weavetest.NewCondition()

	cases := map[string]struct {
		auth    *weavetest.Auth
		addr    nestera.Address
		wantErr *errors.Error
	}{
		"signer registers itself": {
			auth: &weavetest.Auth{Signer: alice},
			addr: alice.Address(),
		},
		"cannot register another address": {
			auth:    &weavetest.Auth{Signer: bobby},
			addr:    alice.Address(),
			wantErr: errors.ErrUnauthorized,
		},
		"unsigned registration": {
			auth:    &weavetest.Auth{},
			addr:    alice.Address(),
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			c := NewController(tc.auth)

			u, err := c.Register(context.Background(), db, tc.addr)
			assert.IsErr(t, tc.wantErr, err)

			ok, err := c.Exists(db, tc.addr)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantErr == nil, ok)
			if tc.wantErr == nil {
				assert.Equal(t, &User{}, u)
			}
		})
	}
}

func TestRegisterResetsExistingUser(t *testing.T) {
	alice := weavetest.NewCondition()
	db := store.MemStore()
	c := NewController(&weavetest.Auth{Signer: alice})
	ctx := context.Background()

	_, err := c.Register(ctx, db, alice.Address())
	assert.Nil(t, err)
	assert.Nil(t, c.AddCommitment(db, alice.Address(), 500))

	u, err := c.Get(db, alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, &User{TotalBalance: 500, CommitmentCount: 1}, u)

	_, err = c.Register(ctx, db, alice.Address())
	assert.Nil(t, err)
	u, err = c.Get(db, alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, &User{}, u)
}

func TestGetUnknownUser(t *testing.T) {
	db := store.MemStore()
	c := NewController(&weavetest.Auth{})
	addr := weavetest.NewCondition().Address()

	u, err := c.Get(db, addr)
	assert.Nil(t, err)
	if u != nil {
		t.Fatalf("unexpected user: %v", u)
	}
	_, err = c.Require(db, addr)
	assert.IsErr(t, errors.ErrUserNotFound, err)
	assert.IsErr(t, errors.ErrUserNotFound, c.AddCommitment(db, addr, 1))
	assert.IsErr(t, errors.ErrUserNotFound, c.ReleaseBalance(db, addr, 1))
}

func TestBalanceChanges(t *testing.T) {
	alice := weavetest.NewCondition()
	addr := alice.Address()

	cases := map[string]struct {
		initial User
		add     int64
		release int64
		want    User
		wantErr *errors.Error
	}{
		"add and release": {
			add:     100,
			release: 40,
			want:    User{TotalBalance: 60, CommitmentCount: 1},
		},
		"release below zero after a reset": {
			release: 40,
			want:    User{TotalBalance: -40},
		},
		"balance overflow": {
			initial: User{TotalBalance: math.MaxInt64},
			add:     1,
			want:    User{TotalBalance: math.MaxInt64},
			wantErr: errors.ErrOverflow,
		},
		"commitment count overflow": {
			initial: User{CommitmentCount: math.MaxUint32},
			add:     1,
			want:    User{CommitmentCount: math.MaxUint32},
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			c := NewController(&weavetest.Auth{Signer: alice})
			initial := tc.initial
			assert.Nil(t, c.bucket.Put(db, addr, &initial))

			var err error
			if tc.add != 0 {
				assert.IsErr(t, tc.wantErr, c.CanCommit(db, addr, tc.add))
				err = c.AddCommitment(db, addr, tc.add)
			}
			if err == nil && tc.release != 0 {
				err = c.ReleaseBalance(db, addr, tc.release)
			}
			assert.IsErr(t, tc.wantErr, err)

			u, err := c.Require(db, addr)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, *u)
		})
	}
}
