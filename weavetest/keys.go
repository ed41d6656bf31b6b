package weavetest

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/crypto"
)

func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

func NewCondition() nestera.Condition {
	return NewKey().PublicKey().Condition()
}
