// Package iir runs rational transfer functions over sample blocks.
//
// [Filter] is a Direct Form II Transposed implementation of arbitrary order
// whose state survives between calls, so a signal split into blocks is
// filtered exactly as if processed in one piece. [ComplexFilter] runs
// complex-valued coefficients over a real input, which is how frequency
// shifted (analytic) filters are applied. [ZeroPhase] filters each block
// forward and backward without carrying anything across blocks, and
// [FrequencyResponse] evaluates a coefficient pair on the unit circle.
package iir
