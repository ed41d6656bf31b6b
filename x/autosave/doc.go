/*
Package autosave implements recurring deposits.

A schedule deposits a fixed amount into the flexible balance of its owner
every interval. Execution is triggered from outside, by anyone, once the
schedule is due. Each execution advances the schedule by exactly one
interval, so an overdue schedule needs one call per missed period.

A cancelled schedule stays cancelled.
*/
package autosave
