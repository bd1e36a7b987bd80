package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/services/logger"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	calls []time.Time
	n     int
	err   error
}

func (f *fakeCompleter) CompleteDueReservations(ctx context.Context, now time.Time) (int, error) {
	f.calls = append(f.calls, now)
	return f.n, f.err
}

func TestCheckoutSweep(t *testing.T) {
	fixed := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	completer := &fakeCompleter{n: 2}

	CheckoutSweep(completer, logger.NewNop(), func() time.Time { return fixed })()

	require.Len(t, completer.calls, 1)
	assert.Equal(t, fixed, completer.calls[0])
}

func TestCheckoutSweep_ErrorIsLoggedNotPanicked(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("db down")}
	assert.NotPanics(t, func() {
		CheckoutSweep(completer, logger.NewNop(), time.Now)()
	})
}

func TestInitCronJobs(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	require.NoError(t, InitCronJobs(c, "0 0 * * *", &fakeCompleter{}, logger.NewNop()))
	assert.Len(t, c.Entries(), 1)
}

func TestInitCronJobs_Disabled(t *testing.T) {
	c := cron.New()
	require.NoError(t, InitCronJobs(c, "", &fakeCompleter{}, logger.NewNop()))
	assert.Empty(t, c.Entries())
}

func TestInitCronJobs_BadSpec(t *testing.T) {
	c := cron.New()
	assert.Error(t, InitCronJobs(c, "not a cron", &fakeCompleter{}, logger.NewNop()))
}
