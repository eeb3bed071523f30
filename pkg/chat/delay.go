package chat

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

// Reply pacing constants. The assistant deliberately does not answer
// instantly: the delay models a human reading the inbound message, thinking,
// and typing a reply. Product behavior depends on the chat "feeling real",
// so the non-instant response is a contract, not an accident.
const (
	readingWordsPerMinute = 250
	typingCharsPerMinute  = 200 // 40 wpm at 5 chars per word
	typingAppliedFraction = 0.3

	minReplyDelay = 2 * time.Second
	maxReplyDelay = 6 * time.Second

	maxEstimatedReplyChars = 150
)

// Pacer computes and applies the artificial reply delay. The random source
// and sleep function are injectable so tests stay fast and deterministic.
type Pacer struct {
	rand  *rand.Rand
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPacer returns a Pacer using the given random source. A nil source falls
// back to a time-seeded one.
func NewPacer(src rand.Source) *Pacer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Pacer{
		rand:  rand.New(src),
		sleep: sleepContext,
	}
}

// DelayFor computes the pause taken before generating a reply to message:
// estimated reading time plus 1-3s of "thinking" plus a fraction of the
// estimated typing time, clamped to [2s, 6s].
func (p *Pacer) DelayFor(message string) time.Duration {
	words := len(strings.Fields(message))
	reading := float64(words) / readingWordsPerMinute * 60

	thinking := 1 + p.rand.Float64()*2

	estimatedReply := float64(len(message))*0.8 + 50
	if estimatedReply > maxEstimatedReplyChars {
		estimatedReply = maxEstimatedReplyChars
	}
	typing := estimatedReply / typingCharsPerMinute * 60

	total := reading + thinking + typing*typingAppliedFraction

	d := time.Duration(total * float64(time.Second))
	if d < minReplyDelay {
		d = minReplyDelay
	}
	if d > maxReplyDelay {
		d = maxReplyDelay
	}
	return d
}

// OverrideSleepForTest replaces the pacer's sleep function so tests run
// without real delays.
func (p *Pacer) OverrideSleepForTest() {
	p.sleep = func(ctx context.Context, _ time.Duration) error {
		return ctx.Err()
	}
}

// Wait blocks for d or until ctx is done, whichever comes first.
func (p *Pacer) Wait(ctx context.Context, d time.Duration) error {
	return p.sleep(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
