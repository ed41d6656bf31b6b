/*
Package crypto holds the ed25519 keys used to sign ledger transactions.

A public key is exposed to the rest of the ledger as a Condition, so that an
authenticated signer can be compared with the owner Address of a record.
*/
package crypto
