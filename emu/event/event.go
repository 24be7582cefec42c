package event

/*
 * Allegrex - Cycle event scheduler
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

/*
 * Events are kept on a list ordered by fire time, each entry relative
 * to the one before it, so advancing only touches the head. The core
 * loop advances by the cycles consumed over each slice of blocks. A
 * forced check marks the budget exhausted so the loop re-examines run
 * state before the next block; the interpreter sets it on the
 * suspension paths.
 */

type Callback = func(iarg int)

type Event struct {
	time  int      // Number of cycles to event
	owner int      // Token identifying who registered the event
	cb    Callback // Function to callback
	iarg  int      // Integer argument
	prev  *Event
	next  *Event
}

type EventList struct {
	head *Event
	tail *Event
}

var el EventList

var forced bool

// Request that the core loop re-check run state before the next block.
func ForceCheck() {
	forced = true
}

// Consume a pending forced check.
func Forced() bool {
	f := forced
	forced = false
	return f
}

// Report whether any event is pending.
func AnyEvent() bool {
	return el.head != nil
}

// Add an event. A zero delay fires immediately.
func AddEvent(owner int, cb Callback, time int, iarg int) {
	if time == 0 {
		cb(iarg)
		return
	}

	ev := &Event{owner: owner, cb: cb, time: time, iarg: iarg}

	evptr := el.head
	// If empty put on head
	if evptr == nil {
		el.head = ev
		el.tail = ev
		return
	}

	// Scan for place to install it
	for evptr != nil {
		// Event before next event
		if ev.time <= evptr.time {
			// Remove current time from next time
			evptr.time -= ev.time
			ev.prev = evptr.prev
			ev.next = evptr
			evptr.prev = ev
			if ev.prev != nil {
				ev.prev.next = ev
			} else {
				el.head = ev
			}
			return
		}
		// Make new event relative to head of list
		ev.time -= evptr.time
		evptr = evptr.next
	}

	// Get here, put it on tail of list
	ev.prev = el.tail
	el.tail.next = ev
	el.tail = ev
}

// Cancel the first pending event matching owner and argument.
func CancelEvent(owner int, iarg int) {
	evptr := el.head

	for evptr != nil {
		if evptr.owner == owner && evptr.iarg == iarg {
			nxt := evptr.next
			if nxt != nil {
				// Give remaining time to the next event
				nxt.time += evptr.time
				nxt.prev = evptr.prev
			} else {
				el.tail = evptr.prev
			}

			if evptr.prev != nil {
				evptr.prev.next = evptr.next
			} else {
				el.head = evptr.next
			}
			return
		}
		evptr = evptr.next
	}
}

// Advance time by t cycles, firing everything that comes due.
func Advance(t int) {
	evptr := el.head
	if evptr == nil {
		return
	}
	evptr.time -= t
	for evptr != nil && evptr.time <= 0 {
		spill := evptr.time
		el.head = evptr.next
		if el.head != nil {
			el.head.prev = nil
			el.head.time += spill
		} else {
			el.tail = nil
		}
		evptr.cb(evptr.iarg)
		evptr = el.head
	}
}
