/*
Package gov implements the governance engine.

Proposals are voted on with a weight equal to the lifetime deposited
amount of the voter. A proposal may carry an action that changes program
rates or pauses the program. Accepted action proposals are executed once
their voting period and timelock have passed.

Before governance is activated, privileged operations are allowed for the
admin only. After activation they are only possible through proposals.
See ValidateAdminOrGovernance.
*/
package gov
