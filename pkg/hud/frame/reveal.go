package frame

import "time"

// RevealInterval is the delay between characters of the dialog typing effect.
const RevealInterval = 30 * time.Millisecond

// Reveal tracks how much of the current dialog block has been typed out.
// Switching to a different block restarts the effect from zero.
type Reveal struct {
	index int
	text  string
	total int
	shown int
	last  time.Time
}

// Sync points the reveal at the block being displayed. A changed index or
// changed text restarts the effect; a matching block is left alone.
func (r *Reveal) Sync(index int, text string, now time.Time) {
	if index == r.index && text == r.text {
		return
	}
	r.index = index
	r.text = text
	r.total = len([]rune(text))
	r.shown = 0
	r.last = now
}

// Advance reveals the characters whose time has come. Carry-over is kept in
// the last timestamp so uneven frame times do not slow the effect down.
func (r *Reveal) Advance(now time.Time) {
	if r.shown >= r.total {
		return
	}
	n := int(now.Sub(r.last) / RevealInterval)
	if n <= 0 {
		return
	}
	r.shown += n
	r.last = r.last.Add(time.Duration(n) * RevealInterval)
	if r.shown >= r.total {
		r.shown = r.total
	}
}

// Shown returns how many runes of the block are currently visible.
func (r *Reveal) Shown() int { return r.shown }

// Done reports whether the whole block is visible.
func (r *Reveal) Done() bool { return r.shown >= r.total }

// Skip makes the whole block visible at once.
func (r *Reveal) Skip() {
	r.shown = r.total
}
