// Package level computes level statistics for blocks of samples in the
// 16-bit integer scale used at the capture/playback boundary.
//
// [Calculate] summarises one block. [Meter] accumulates the same figures
// across blocks and also keeps the statistics of the most recent block,
// which is what a session reports while audio is running.
//
// Build with the fastmath tag to compute square roots and logarithms with
// github.com/meko-christian/algo-approx instead of package math.
package level
