package worker

import "errors"

// Outcome is what the consumer does with a delivery once Handle returns.
type Outcome int

const (
	Ack Outcome = iota
	Drop
	Requeue
)

// Settle picks the outcome for a handled delivery. Malformed messages are dropped;
// any other failure is requeued once, and dropped when it fails again on redelivery.
func Settle(err error, redelivered bool) Outcome {
	switch {
	case err == nil:
		return Ack
	case errors.Is(err, ErrMalformed), redelivered:
		return Drop
	}
	return Requeue
}
