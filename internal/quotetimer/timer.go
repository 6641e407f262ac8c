// Package quotetimer tracks how long a quote stays open for bidding.
package quotetimer

import (
	"fmt"
	"time"
)

// Countdown is the remaining bidding time for a quote as shown to clients.
type Countdown struct {
	ExpiresAt        time.Time `json:"expires_at"`
	RemainingSeconds int64     `json:"remaining_seconds"`
	Expired          bool      `json:"expired"`
	Display          string    `json:"display"`
}

// Remaining computes the countdown to expiresAt as seen at now.
// Once the deadline has passed the countdown is clamped to zero.
func Remaining(expiresAt, now time.Time) Countdown {
	d := expiresAt.Sub(now)
	if d <= 0 {
		return Countdown{ExpiresAt: expiresAt, Expired: true, Display: "00:00:00"}
	}
	secs := int64(d / time.Second)
	return Countdown{
		ExpiresAt:        expiresAt,
		RemainingSeconds: secs,
		Display:          fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60),
	}
}

// Deadline returns the expiry time for a quote created at createdAt with the given window.
func Deadline(createdAt time.Time, window time.Duration) time.Time {
	return createdAt.Add(window).UTC()
}
