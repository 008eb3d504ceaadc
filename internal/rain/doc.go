// Package rain implements the digital rain simulation.
//
// Two effects share the same stream mechanics:
//
//   - [Rain]: columns of falling glyph streams, forever or for a fixed duration
//   - [Converge]: the same rain, but the streams under a title decelerate into
//     place and spell it out, after which the rest of the rain drains away
//
// Both implement [engine.Effect]. All randomness comes from the frame's
// [engine.Random], so a seeded source reproduces a run exactly.
//
// # Streams
//
// A [Stream] is one falling trail. Index 0 of its glyphs is the lead, drawn
// bold in the lead colour; the rest fade linearly from the tail colour to
// black. The lead glyph changes every tick and, with a 10% chance per tick,
// one random position of the trail changes too.
//
// # Convergence
//
// Converge streams carry a [Convergence] payload with a three-state machine
// (Normal, Converging, InPlace). The effect itself walks an explicit [Phase]
// sequence: Running, Converged, Draining, Drained, Settled.
package rain
