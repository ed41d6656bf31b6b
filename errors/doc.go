/*
Package errors implements the error kinds used across the ledger.

Reuse the kinds declared here wherever possible. A kind is created with
Register(code, description) and each code must be unique. Create runtime
errors by wrapping a kind at the point of failure, for example

	errors.Wrap(errors.ErrLockNotFound, "lock 3")
	errors.Wrapf(errors.ErrInvalidAmount, "amount %d", amount)

so that a stack trace is attached once, at the innermost wrap. Test the kind
of any error with Kind.Is(err).

Use fmt verbs to inspect an error:
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
