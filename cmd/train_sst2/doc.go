// Package main trains the self-explaining SST-2 sentiment classifier.
// The network learns sentence and phrase features without backpropagation;
// the concept store is built from the training split on first use.
package main
