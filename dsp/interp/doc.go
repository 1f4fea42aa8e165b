// Package interp provides the fractional-read kernels used by delay lines.
//
//   - [Linear2]:  2-point linear interpolation, the vibrato default
//   - [Hermite4]: 4-point cubic Hermite, smoother for slowly swept delays
//
// The [Mode] enum selects the kernel at construction time.
package interp
