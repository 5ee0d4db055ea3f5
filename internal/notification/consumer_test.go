package notification

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

type failingReader struct {
	reads  int64
	closed int64
}

func (f *failingReader) ReadMessage(context.Context) (kafka.Message, error) {
	atomic.AddInt64(&f.reads, 1)
	return kafka.Message{}, errors.New("broker unreachable")
}

func (f *failingReader) Close() error {
	atomic.AddInt64(&f.closed, 1)
	return nil
}

func TestConsumeLoopBacksOffOnReadErrors(t *testing.T) {
	reader := &failingReader{}
	svc := NewService(newFakeRepo(), &fakeChannel{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consumeLoop(ctx, reader, svc, nil, nil, 20*time.Millisecond)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancel")
	}

	// Each failed read waits out the backoff, so the attempt count stays
	// small. A spinning loop would rack up thousands in 100ms.
	if reads := atomic.LoadInt64(&reader.reads); reads > 10 {
		t.Errorf("read attempts = %d, want a handful", reads)
	}
	if atomic.LoadInt64(&reader.closed) != 1 {
		t.Error("reader was not closed on shutdown")
	}
}
