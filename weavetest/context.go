package weavetest

import (
	"context"
	"time"

	"github.com/nestera-labs/nestera"
)

// Ctx returns a context with a chain ID, a height and the given block time
// set. Time is truncated to full seconds, the resolution of the ledger clock.
func Ctx(now time.Time) nestera.Context {
	ctx := context.Background()
	ctx = nestera.WithChainID(ctx, "nestera-test")
	ctx = nestera.WithHeight(ctx, 1)
	return nestera.WithBlockTime(ctx, now.Truncate(time.Second))
}

// CtxAt is like Ctx, but the block time is given in unix seconds.
func CtxAt(unix int64) nestera.Context {
	return Ctx(time.Unix(unix, 0))
}
