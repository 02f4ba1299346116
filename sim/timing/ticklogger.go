package timing

import "log"

// TickLogger is a hook that prints every tick.
type TickLogger struct {
	logger *log.Logger
}

// NewTickLogger returns a TickLogger that writes into the logger.
func NewTickLogger(logger *log.Logger) *TickLogger {
	h := new(TickLogger)
	h.logger = logger

	return h
}

// Func writes the tick information into the logger.
func (h *TickLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeTick {
		return
	}

	h.logger.Printf("%d, tick +%d", ctx.Now, ctx.Step)
}
