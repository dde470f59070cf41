// Package progress tracks the 0–100 progress value of an install run.
package progress

// Milestones marking the end of each pipeline stage.
const (
	DirectoriesMilestone = 30
	DownloadMilestone    = 60
	ShimMilestone        = 90
	RestartMilestone     = 100
)

const maxValue = 100

// Observer is notified after every change to the tracker.
type Observer func(value float64, inProgress bool)

// Tracker holds the progress of one run. Only the running stage writes to it,
// so it carries no lock.
type Tracker struct {
	value      float64
	inProgress bool
	observer   Observer
}

// NewTracker returns a tracker at {0, false}. observer may be nil.
func NewTracker(observer Observer) *Tracker {
	return &Tracker{observer: observer}
}

// Reset returns the tracker to {0, false}.
func (t *Tracker) Reset() {
	t.value = 0
	t.inProgress = false
	t.notify()
}

// Start marks the run as in progress.
func (t *Tracker) Start() {
	t.inProgress = true
	t.notify()
}

// Set moves the value to v. Values below the current one are ignored and
// values above 100 are clamped.
func (t *Tracker) Set(v float64) {
	if v > maxValue {
		v = maxValue
	}
	if v <= t.value {
		return
	}
	t.value = v
	t.notify()
}

// Advance adds delta to the current value.
func (t *Tracker) Advance(delta float64) {
	t.Set(t.value + delta)
}

// Finish forces the value to v and clears the in-progress flag.
func (t *Tracker) Finish(v float64) {
	t.Set(v)
	t.inProgress = false
	t.notify()
}

// Value returns the current value.
func (t *Tracker) Value() float64 {
	return t.value
}

// InProgress reports whether a run is active.
func (t *Tracker) InProgress() bool {
	return t.inProgress
}

// PerItem returns the share of the remaining distance to milestone that each of
// count items contributes, so count advances land exactly on the milestone.
func (t *Tracker) PerItem(milestone float64, count int) float64 {
	return PerItem(milestone, t.value, count)
}

// PerItem computes (milestone-current)/count, or 0 when there is nothing to divide.
func PerItem(milestone float64, current float64, count int) float64 {
	if count <= 0 || milestone <= current {
		return 0
	}
	return (milestone - current) / float64(count)
}

func (t *Tracker) notify() {
	if t.observer != nil {
		t.observer(t.value, t.inProgress)
	}
}
