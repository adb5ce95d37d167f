// Package main classifies sentences from standard input and prints the
// label with the phrase and concept evidence behind it.
package main
