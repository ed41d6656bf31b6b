/*
Package flexi keeps the flexible balance of every registered address.

A deposit increases both the withdrawable balance and the lifetime
deposited amount. Withdrawals only decrease the balance, so the lifetime
deposited amount never shrinks and serves as the voting power source.
*/
package flexi
