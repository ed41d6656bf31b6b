/*
Package user implements the registry of known participants.

Registering an address creates a zero balance record for it. Registering an
already known address resets that record to zero. Only the instrument
engines change the balance and the commitment count, through AddCommitment
and ReleaseBalance.
*/
package user
