// Package resource provides a controller that bounds how many reductions
// run concurrently and how fast snapshot IO may proceed. It is optional:
// a nil controller enforces nothing.
package resource
