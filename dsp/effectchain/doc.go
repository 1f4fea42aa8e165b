// Package effectchain maps effect names to constructors.
//
// A [Registry] holds one [Entry] per effect: its name, a description, the
// default parameter string shown to users, and a [Factory] that turns a
// [Context] and parsed [Params] into an effects.Effect. Parameter strings
// are "name=value" lists separated by commas, with quoted string values
// and a trailing "#" comment:
//
//	frequency=200, order=5, type='highpass'  # lowpass, highpass or bandpass
//
// [Chain] runs several built effects in series and is itself an Effect.
package effectchain
