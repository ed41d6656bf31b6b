package x

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(nestera.Context) []nestera.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(nestera.Context, nestera.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx nestera.Context) []nestera.Condition {
	var res []nestera.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !hasPerm(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx nestera.Context, addr nestera.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// RequireAuthorized fails with ErrUnauthorized unless the context
// carries an authentication for the given address.
func RequireAuthorized(ctx nestera.Context, auth Authenticator, addr nestera.Address) error {
	if len(addr) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing address")
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "no signature for %s", addr)
	}
	return nil
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx nestera.Context, auth Authenticator) []nestera.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]nestera.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx nestera.Context, auth Authenticator) nestera.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllConditions returns true if all elements in required are
// also in context.
func HasAllConditions(ctx nestera.Context, auth Authenticator, required []nestera.Condition) bool {
	perms := auth.GetConditions(ctx)
	for _, r := range required {
		if !hasPerm(perms, r) {
			return false
		}
	}
	return true
}

func hasPerm(perms []nestera.Condition, perm nestera.Condition) bool {
	for _, p := range perms {
		if p.Equals(perm) {
			return true
		}
	}
	return false
}
