package notification

import (
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

// raceDetectingConn fails the test if two writers enter WriteMessage at the
// same time, the condition the underlying websocket library forbids.
type raceDetectingConn struct {
	inWrite  atomic.Bool
	overlaps atomic.Int32
	writes   atomic.Int32
}

func (c *raceDetectingConn) WriteMessage(messageType int, data []byte) error {
	if !c.inWrite.CompareAndSwap(false, true) {
		c.overlaps.Add(1)
		return nil
	}
	c.writes.Add(1)
	c.inWrite.Store(false)
	return nil
}

func TestBroadcastSerializesWritesPerConnection(t *testing.T) {
	hub := NewHub(zap.NewNop())
	conn := &raceDetectingConn{}
	hub.Register("user-1", conn)

	const broadcasters = 8
	const perGoroutine = 50

	var wg sync.WaitGroup
	for i := 0; i < broadcasters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				hub.Broadcast(map[string]string{"type": "document_update"})
			}
		}()
	}
	wg.Wait()

	if n := conn.overlaps.Load(); n != 0 {
		t.Errorf("observed %d overlapping writes on one connection", n)
	}
	if n := conn.writes.Load(); n != broadcasters*perGoroutine {
		t.Errorf("writes = %d, want %d", n, broadcasters*perGoroutine)
	}
}

func TestBroadcastDuringRegisterUnregister(t *testing.T) {
	hub := NewHub(zap.NewNop())

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			conn := &raceDetectingConn{}
			hub.Register("user-2", conn)
			hub.Unregister("user-2", conn)
		}
		close(stop)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				hub.Broadcast(map[string]string{"type": "document_update"})
			}
		}
	}()

	wg.Wait()
}

func TestUnregisterRemovesOnlyThatConnection(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := &raceDetectingConn{}
	b := &raceDetectingConn{}
	hub.Register("user-3", a)
	hub.Register("user-3", b)

	hub.Unregister("user-3", a)
	hub.Broadcast(map[string]string{"type": "document_update"})

	if n := a.writes.Load(); n != 0 {
		t.Errorf("unregistered connection received %d writes", n)
	}
	if n := b.writes.Load(); n != 1 {
		t.Errorf("remaining connection writes = %d, want 1", n)
	}
}
