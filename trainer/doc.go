// Package trainer provides high-level training orchestration for encoder
// networks. It runs an epoch loop over the training split, retraining the
// worst cells found by tallying, without backpropagation or floating-point
// weight updates.
package trainer
