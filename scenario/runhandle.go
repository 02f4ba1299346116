package scenario

// A RunHandle tracks a run started by Controller.Start.
type RunHandle struct {
	done chan struct{}
	err  error
}

func newRunHandle() *RunHandle {
	return &RunHandle{done: make(chan struct{})}
}

func (h *RunHandle) finish(err error) {
	h.err = err
	close(h.done)
}

// Done is closed when the run ends.
func (h *RunHandle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the run ends and returns the error that ended it, if
// any.
func (h *RunHandle) Wait() error {
	<-h.done
	return h.err
}
