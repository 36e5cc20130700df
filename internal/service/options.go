package service

import (
	"time"

	"github.com/taskdesk/taskdesk-go/internal/async"
)

const (
	MinPasswordLength = 8

	// DefaultDeleteGrace is how long a deleted task stays in storage
	// flagged as deleting before it is removed.
	DefaultDeleteGrace = 300 * time.Millisecond
)

// Date layouts matching the en-IN locale strings shown to users.
const (
	SignupDateLayout = "02/01/2006"
	LastLoginLayout  = "02/01/2006, 03:04 pm"
)

// Options tune the timing behaviour shared by the services.
type Options struct {
	// Latency delays the *Async session operations. Zero completes them inline.
	Latency time.Duration
	// DeleteGrace is the window between marking a task deleting and removing it.
	DeleteGrace time.Duration
	Timer       async.Timer
	Now         func() time.Time
}

func (o Options) withDefaults() Options {
	if o.DeleteGrace < 0 {
		o.DeleteGrace = 0
	}
	if o.Timer == nil {
		o.Timer = async.RealTimer
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
