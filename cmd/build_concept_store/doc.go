// Package main builds the concept store from the SST-2 training split
// without running a training pass.
package main
