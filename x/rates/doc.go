/*
Package rates keeps the interest rates of all plan families and the pause
flag of the program.

Rates change through gov proposal actions. Before governance is activated
the admin may apply the same actions directly with UpdateMsg.
While the program is paused, PauseDecorator rejects instrument messages.
*/
package rates
