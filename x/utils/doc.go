// Package utils holds decorators shared by every route: savepoints, panic
// recovery, logging and action tagging.
package utils
