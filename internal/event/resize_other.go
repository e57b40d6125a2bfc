//go:build !unix

package event

type resizeWatcher struct{}

// watchResize is a no-op where SIGWINCH does not exist; bubbletea still
// reports the initial window size.
func watchResize(func(), <-chan struct{}) *resizeWatcher {
	return nil
}

func (w *resizeWatcher) close() {}
