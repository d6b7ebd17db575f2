// Package mouse turns raw terminal mouse reports into pointer actions.
//
// Terminals report the current button state with every mouse event rather
// than discrete press and release notifications. Tracker keeps the held
// button between reports and derives the transitions:
//
//	none  → left   press
//	left  → left   drag (only when the position changed)
//	left  → none   release
//	none  → none   move
//
// # Pointer capture
//
// The receiver of a press can claim the pointer with Capture. Until the
// matching release every drag and release belongs to that owner, even when
// the pointer leaves it:
//
//	ev := tracker.Translate(raw, time.Now())
//	switch ev.Action {
//	case mouse.ActionPress:
//	    tracker.Capture(indexUnder(ev.Position))
//	case mouse.ActionDrag, mouse.ActionRelease:
//	    if ev.Captured {
//	        deliver(ev.Owner, ev)
//	    }
//	}
//
// # Thread Safety
//
// Tracker is safe for concurrent use. All state mutations are properly
// synchronized with mutex protection.
package mouse
