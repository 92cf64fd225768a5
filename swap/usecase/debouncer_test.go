package usecase_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stableswap/sqs/swap/usecase"
)

func TestDebouncer_RunsLastSchedule(t *testing.T) {
	d := usecase.NewDebouncer(20 * time.Millisecond)

	var (
		runs atomic.Int32
		last atomic.Int32
	)

	for i := int32(1); i <= 3; i++ {
		i := i
		d.Schedule(func(sequence uint64) {
			if !d.IsLatest(sequence) {
				return
			}
			runs.Add(1)
			last.Store(i)
		})
	}

	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, int32(3), last.Load())

	// No late runs from the replaced schedules.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), runs.Load())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := usecase.NewDebouncer(10 * time.Millisecond)

	var runs atomic.Int32
	d.Schedule(func(sequence uint64) {
		runs.Add(1)
	})
	d.Cancel()

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(0), runs.Load())
}

func TestDebouncer_IsLatest(t *testing.T) {
	d := usecase.NewDebouncer(time.Hour)

	var first, second uint64
	d.Schedule(func(sequence uint64) {})
	first = 1
	d.Schedule(func(sequence uint64) {})
	second = 2

	require.False(t, d.IsLatest(first))
	require.True(t, d.IsLatest(second))

	d.Cancel()
	require.False(t, d.IsLatest(second))
}
