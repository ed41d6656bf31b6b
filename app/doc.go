/*
Package app glues the extensions together into a runnable ledger.

A Router dispatches transactions to the handler registered for the message
path, Decorators wrap it with cross cutting middleware and the Ledger
executes encoded transactions against a committed store, one block at a
time.

Stack and Initializers show how the extensions of this repository are
wired into a complete application.
*/
package app
