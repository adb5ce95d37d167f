// Package main launches the SST-2 training entry point with the fixed
// hyperparameter set of the published runs and exits with the child's
// exit code.
package main
