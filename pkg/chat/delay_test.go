package chat

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer_DelayBounds(t *testing.T) {
	p := NewPacer(rand.NewSource(1))

	inputs := []string{
		"",
		"hi",
		"I'd like to know more about the neighborhood",
		strings.Repeat("a very long message about selling our house ", 50),
	}
	for _, msg := range inputs {
		for i := 0; i < 100; i++ {
			d := p.DelayFor(msg)
			assert.GreaterOrEqual(t, d, 2*time.Second, "input %q", msg)
			assert.LessOrEqual(t, d, 6*time.Second, "input %q", msg)
		}
	}
}

func TestPacer_DeterministicWithSeed(t *testing.T) {
	a := NewPacer(rand.NewSource(42))
	b := NewPacer(rand.NewSource(42))
	assert.Equal(t, a.DelayFor("hello"), b.DelayFor("hello"))
}

func TestPacer_LongMessageHitsCeiling(t *testing.T) {
	p := NewPacer(rand.NewSource(1))
	// 600 words of reading alone exceeds the ceiling.
	msg := strings.Repeat("word ", 600)
	assert.Equal(t, 6*time.Second, p.DelayFor(msg))
}

func TestPacer_WaitHonorsContext(t *testing.T) {
	p := NewPacer(rand.NewSource(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := p.Wait(ctx, 5*time.Second)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
