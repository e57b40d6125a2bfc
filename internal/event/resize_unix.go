//go:build unix

package event

import (
	"os"
	"os/signal"
	"syscall"
)

type resizeWatcher struct {
	sig  chan os.Signal
	done chan struct{}
}

// watchResize calls onResize for every SIGWINCH until stop is closed.
func watchResize(onResize func(), stop <-chan struct{}) *resizeWatcher {
	w := &resizeWatcher{
		sig:  make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(w.sig, syscall.SIGWINCH)
	go func() {
		defer close(w.done)
		for {
			select {
			case <-stop:
				return
			case <-w.sig:
				onResize()
			}
		}
	}()
	return w
}

func (w *resizeWatcher) close() {
	signal.Stop(w.sig)
	<-w.done
}
