package pathao

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/parceldesk/pathao-sdk-go/internal/logger"
)

func TestRefreshJob_RunsPeriodically(t *testing.T) {
	ran := make(chan struct{}, 1)

	job := newRefreshJob(time.Millisecond, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}, logger.Nop())

	job.start(context.Background(), 0)
	defer job.stop()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("refresh function was never invoked")
	}
}

func TestRefreshJob_StopWaitsAndIsIdempotent(t *testing.T) {
	job := newRefreshJob(time.Millisecond, func(context.Context) error {
		return errors.New("transient")
	}, logger.Nop())

	job.start(context.Background(), 0)
	time.Sleep(5 * time.Millisecond)

	job.stop()
	job.stop()
}

func TestRefreshJob_DoubleStartIsNoop(t *testing.T) {
	calls := make(chan struct{}, 100)

	job := newRefreshJob(time.Hour, func(context.Context) error {
		calls <- struct{}{}
		return nil
	}, logger.Nop())

	job.start(context.Background(), time.Hour)
	job.start(context.Background(), time.Millisecond)
	defer job.stop()

	// the second start must not have rearmed the ticker to 1ms
	select {
	case <-calls:
		t.Fatal("job ran with the interval from the ignored second start")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestNewRefreshJob_DefaultInterval(t *testing.T) {
	job := newRefreshJob(0, func(context.Context) error { return nil }, logger.Nop())
	assert.Equal(t, DefaultRefreshInterval, job.interval)
}
