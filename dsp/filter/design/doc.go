// Package design provides the IIR coefficient provider for the effect engine.
//
// Designers return a [TransferFunction]: numerator B and denominator A in
// ascending powers of z^-1, with A[0] == 1, ready for dsp/filter/iir.
// All cutoffs are normalized to the Nyquist rate, i.e. in (0, 1).
//
// Every design follows the same path: an analog prototype in zero/pole/gain
// form ([ZPK]), a frequency transformation to the prewarped cutoff(s), the
// bilinear transform, and expansion of the roots into polynomials.
//
//   - [Butterworth]: maximally flat lowpass, highpass and bandpass
//   - [Elliptic]: equiripple (Cauer) lowpass with passband ripple and
//     stopband attenuation in dB
package design
