package utils

import (
	"context"
	"fmt"
	"testing"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/store"
	"github.com/nestera-labs/nestera/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	// a default error if desired
	derr := fmt.Errorf("something went wrong")

	cases := map[string]struct {
		save    nestera.Decorator
		handler nestera.Handler
		check   bool
		isError bool
		written [][]byte
		missing [][]byte
	}{
		"savepoint disabled, error keeps both writes": {
			save:    NewSavepoint(),
			handler: &weavetest.Handler{Write: &weavetest.Pair{Key: nk, Value: nv}, CheckErr: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok, nk},
		},
		"check savepoint, error drops the write": {
			save:    NewSavepoint().OnCheck(),
			handler: &weavetest.Handler{Write: &weavetest.Pair{Key: nk, Value: nv}, CheckErr: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint, error drops the write": {
			save:    NewSavepoint().OnDeliver(),
			handler: &weavetest.Handler{Write: &weavetest.Pair{Key: nk, Value: nv}, DeliverErr: derr},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint does not guard check": {
			save:    NewSavepoint().OnDeliver(),
			handler: &weavetest.Handler{Write: &weavetest.Pair{Key: nk, Value: nv}, CheckErr: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok, nk},
		},
		"both savepoints, success keeps the write": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &weavetest.Handler{Write: &weavetest.Pair{Key: nk, Value: nv}},
			written: [][]byte{ok, nk},
		},
		"both savepoints, panic drops the write": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: weavetest.Decorate(&weavetest.Handler{Write: &weavetest.Pair{Key: nk, Value: nv}}, panicAfter{}),
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			// Recovery is the outermost decorator, so the savepoint is
			// unwound by the panic before it is turned into an error.
			h := weavetest.Decorate(weavetest.Decorate(tc.handler, tc.save), NewRecovery())

			var err error
			if tc.check {
				_, err = h.Check(ctx, kv, &weavetest.Tx{})
			} else {
				_, err = h.Deliver(ctx, kv, &weavetest.Tx{})
			}
			assert.Equal(t, tc.isError, err != nil, "%+v", err)

			for _, key := range tc.written {
				has, err := kv.Has(key)
				require.NoError(t, err)
				assert.True(t, has, "%x", key)
			}
			for _, key := range tc.missing {
				has, err := kv.Has(key)
				require.NoError(t, err)
				assert.False(t, has, "%x", key)
			}
		})
	}
}

// panicAfter lets the wrapped handler write before panicking.
type panicAfter struct{}

func (panicAfter) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx, next nestera.Checker) (*nestera.CheckResult, error) {
	next.Check(ctx, db, tx)
	panic("check")
}

func (panicAfter) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx, next nestera.Deliverer) (*nestera.DeliverResult, error) {
	next.Deliver(ctx, db, tx)
	panic("deliver")
}
