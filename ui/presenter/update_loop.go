package presenter

import "time"

// Loop drives periodic presenter updates and reschedules itself through the
// Schedule callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Status   *StatusPresenter
	Schedule func()
}

func NewLoop(status *StatusPresenter, schedule func()) *Loop {
	return &Loop{Status: status, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Status != nil {
		l.Status.Tick(time.Now())
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
