// Package state shares the latest countdown view across goroutines.
//
// The countdown itself is owned by a single goroutine (the Bubble Tea update
// loop or the headless ticker). That goroutine publishes a Snapshot after every
// tick with Store.Update; HTTP handlers and the WebSocket stream read it with
// Store.Snapshot or follow it with Store.Subscribe.
//
//	ticking goroutine           readers
//	┌─────────────────┐        ┌──────────────────────┐
//	│ countdown.Tick  │        │ GET /api/countdown   │
//	│ store.Update()  │──────→ │ store.Snapshot()     │
//	│                 │        │ /ws: store.Subscribe │
//	└─────────────────┘        └──────────────────────┘
//
// Snapshots are plain values, so readers never share memory with the writer.
// Subscriber channels are buffered; a subscriber that falls behind misses
// intermediate updates rather than blocking the ticking goroutine.
//
// The zero Store is ready to use.
package state
