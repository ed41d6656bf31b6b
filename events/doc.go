/*
Package events publishes ledger notifications such as proposal creation and
cast votes.

Publishing is best effort. A Sink never fails the operation that emitted
the event, so engines call Publish only after all their writes succeeded.
*/
package events
