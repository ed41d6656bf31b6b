package weavetest

import (
	"context"
	"fmt"

	"github.com/nestera-labs/nestera"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer nestera.Condition

	// Signers represents an authentication of multiple signers.
	Signers []nestera.Condition
}

func (a *Auth) GetConditions(nestera.Context) []nestera.Condition {
	if a.Signer != nil {
		return append(append([]nestera.Condition{}, a.Signers...), a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx nestera.Context, addr nestera.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx nestera.Context, permissions ...nestera.Condition) nestera.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx nestera.Context) []nestera.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]nestera.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []nestera.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx nestera.Context, addr nestera.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
