/*
Package nestera defines the interfaces shared by the ledger engines and
the simpler types they exchange.

Engines receive a Context and a KVStore on every call. The Context carries
the block height and time, the chain id and a logger; each extension may
add its own keys, for example the signers verified by x/sigs.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value.
*/
package nestera
