/*
Package x contains the authentication contract shared by all engines and
the engines themselves as subpackages.

Every engine receives an Authenticator in its constructor, so the signature
scheme can be replaced without touching the engine code.
*/
package x
