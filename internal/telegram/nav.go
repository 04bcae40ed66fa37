package telegram

import "sync"

// State identifies a screen of the inline menu.
type State string

const (
	StateRoot       State = "root"
	StateTools      State = "tools"
	StateLang       State = "lang"
	StateTZ         State = "tz"
	StateSound      State = "sound"
	StateMelody     State = "melody"
	StateList       State = "list"
	StateCancelPick State = "cancel_pick"
	StateWatchPick  State = "watch_pick"
	StateInMinutes  State = "in_minutes"
)

// Pending input kinds. A pending input belongs to the stack frame that
// requested it and dies with that frame.
const (
	pendingNone      = ""
	pendingCity      = "await_city"
	pendingLocalTime = "await_local_time"
	pendingInText    = "await_in_text"
)

type frame struct {
	state   State
	pending string
	// pendingArg carries flow data tied to the pending input, e.g. the
	// minutes chosen before the reminder text is typed.
	pendingArg int
}

// navStack is the per-chat menu position. It is never empty and its bottom
// frame is always the root screen, so Back is total: at the root it stays
// at the root.
type navStack struct {
	frames []frame
}

func newNavStack() *navStack {
	return &navStack{frames: []frame{{state: StateRoot}}}
}

func (n *navStack) Current() State {
	return n.frames[len(n.frames)-1].state
}

// Push enters a submenu. Re-pushing the current state is a no-op so a
// double-tapped button does not grow the stack.
func (n *navStack) Push(s State) {
	if n.Current() == s {
		return
	}
	n.frames = append(n.frames, frame{state: s})
}

// Back leaves the current screen, discarding any pending input the screen
// requested, and returns the screen now on top.
func (n *navStack) Back() State {
	if len(n.frames) > 1 {
		n.frames = n.frames[:len(n.frames)-1]
	}
	return n.Current()
}

// Reset drops everything back to the root screen.
func (n *navStack) Reset() {
	n.frames = n.frames[:1]
	n.frames[0] = frame{state: StateRoot}
}

func (n *navStack) SetPending(kind string, arg int) {
	top := &n.frames[len(n.frames)-1]
	top.pending = kind
	top.pendingArg = arg
}

func (n *navStack) Pending() (string, int) {
	top := n.frames[len(n.frames)-1]
	return top.pending, top.pendingArg
}

func (n *navStack) ClearPending() {
	n.SetPending(pendingNone, 0)
}

// navState holds every chat's menu position. All access is serialized here;
// stacks themselves are not safe for concurrent use.
type navState struct {
	mu     sync.Mutex
	stacks map[int64]*navStack
}

func newNavState() *navState {
	return &navState{stacks: make(map[int64]*navStack)}
}

// with runs fn holding the chat's stack, creating it at the root first if
// the chat is new.
func (s *navState) with(chatID int64, fn func(*navStack)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stacks[chatID]
	if !ok {
		st = newNavStack()
		s.stacks[chatID] = st
	}
	fn(st)
}
