// Package stream drives an effects.Effect at the capture/playback boundary.
//
// A [Session] converts blocks of 16-bit samples to float64, runs the active
// effect, applies the output gain, truncates toward zero and clips to the
// 16-bit range. [Session.Run] pulls blocks from a [Source] and pushes the
// results to a [Sink] until the source is exhausted or the context is
// cancelled. [Streamer] applies an effect to a beep.Streamer for playback.
package stream
