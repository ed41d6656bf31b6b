// Package weavetest provides test doubles for the ledger framework:
// authenticators, handlers, decorators, transactions and a prepared context.
package weavetest
