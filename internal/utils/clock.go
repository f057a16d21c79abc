package utils

import "time"

// Clock abstracts time.Now so expiry and cooldown logic is testable without
// sleeping.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
