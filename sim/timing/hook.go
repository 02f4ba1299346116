package timing

// HookPos names a point in the tick loop where hooks are invoked.
type HookPos struct {
	Name string
}

// HookPosBeforeTick is invoked before the listeners receive a tick.
var HookPosBeforeTick = &HookPos{Name: "BeforeTick"}

// HookPosAfterTick is invoked after all listeners handled a tick.
var HookPosAfterTick = &HookPos{Name: "AfterTick"}

// HookCtx holds what a hook can know about the site it is invoked at.
type HookCtx struct {
	Engine Engine
	Pos    *HookPos
	Now    VTime
	Step   VTime
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	Func(ctx HookCtx)
}

// Hookable defines an object that accept Hooks.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
}

// HookableBase provides the hook bookkeeping for other types.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// AcceptHook registers a hook. A hook can only be registered once.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, registered := range h.hookList {
		if registered == hook {
			panic("duplicated hook")
		}
	}

	h.hookList = append(h.hookList, hook)
}

// InvokeHook triggers the registered hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
