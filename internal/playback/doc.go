// Package playback drives a replay engine in time.
//
// The Controller owns the playback speed and the scheduling of engine
// ticks. In normal mode ticks fire after an exponentially scaled delay
// derived from the speed setting; in turbo mode they fire at a fixed
// short interval and the engine applies a batch of steps per tick. Manual
// stepping is available while paused.
//
// A Controller is owned by one goroutine. Other goroutines hand it work
// through Send, which is executed by Run or Serve between ticks.
package playback
