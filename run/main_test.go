package run

import (
	"context"
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExitCodes(t *testing.T) {
	t.Parallel()

	signalCh := make(chan os.Signal, 1)
	assert.Equal(t, 0, runWith(context.Background(), Options{}, signalCh, func(context.Context) error {
		return nil
	}))
	assert.Equal(t, 1, runWith(context.Background(), Options{}, signalCh, func(context.Context) error {
		return errors.New("failed")
	}))
}

func TestInterrupt(t *testing.T) {
	t.Parallel()

	signalCh := make(chan os.Signal, 1)
	go inputSignals(strings.NewReader("NOISE\nSIGTERM\n"), signalCh)

	code := runWith(context.Background(), Options{}, signalCh, func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	assert.Equal(t, 0, code)
}

func TestShutdownTimeout(t *testing.T) {
	t.Parallel()

	signalCh := make(chan os.Signal, 1)
	signalCh <- syscall.SIGINT

	block := make(chan struct{})
	defer close(block)
	code := runWith(context.Background(), Options{ShutdownTimeout: 10 * time.Millisecond}, signalCh, func(context.Context) error {
		<-block
		return nil
	})
	assert.Equal(t, 1, code)
}
