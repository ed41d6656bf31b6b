/*
Package lock implements locked deposits: an amount committed for a fixed
duration and paid back with whole-year simple interest.

A locked deposit moves from active to withdrawn exactly once, after its
maturity time. Ids are allocated from a counter starting at 1 and are never
reused. The owner index keeps withdrawn deposits.
*/
package lock
