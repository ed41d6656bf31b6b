/*
Package gconf stores singleton records, one per package name, such as the
program-wide lock rate, the governance admin or the voting configuration.

A record is loaded from the genesis "conf" section with InitConfig or
written at runtime with Save. Both validate the record before writing it.
*/
package gconf
