package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNavStackStartsAtRoot(t *testing.T) {
	n := newNavStack()
	require.Equal(t, StateRoot, n.Current())
	require.Equal(t, StateRoot, n.Back(), "back at root stays at root")
}

func TestNavStackPushBack(t *testing.T) {
	n := newNavStack()
	n.Push(StateTools)
	n.Push(StateSound)
	require.Equal(t, StateSound, n.Current())

	require.Equal(t, StateTools, n.Back())
	require.Equal(t, StateRoot, n.Back())
	require.Equal(t, StateRoot, n.Back())
}

func TestNavStackDoublePushIsNoop(t *testing.T) {
	n := newNavStack()
	n.Push(StateTZ)
	n.Push(StateTZ)
	require.Equal(t, StateRoot, n.Back(), "double tap must not add a frame")
}

func TestNavStackBackClearsPending(t *testing.T) {
	n := newNavStack()
	n.Push(StateTZ)
	n.SetPending(pendingCity, 0)

	kind, _ := n.Pending()
	require.Equal(t, pendingCity, kind)

	n.Back()
	kind, _ = n.Pending()
	require.Equal(t, pendingNone, kind, "pending input dies with its frame")
}

func TestNavStackPendingArg(t *testing.T) {
	n := newNavStack()
	n.Push(StateInMinutes)
	n.SetPending(pendingInText, 25)

	kind, arg := n.Pending()
	require.Equal(t, pendingInText, kind)
	require.Equal(t, 25, arg)

	n.ClearPending()
	kind, arg = n.Pending()
	require.Equal(t, pendingNone, kind)
	require.Zero(t, arg)
}

func TestNavStackReset(t *testing.T) {
	n := newNavStack()
	n.Push(StateTools)
	n.Push(StateMelody)
	n.SetPending(pendingLocalTime, 0)

	n.Reset()
	require.Equal(t, StateRoot, n.Current())
	kind, _ := n.Pending()
	require.Equal(t, pendingNone, kind)
	require.Equal(t, StateRoot, n.Back())
}

func TestNavStateIsolatesChats(t *testing.T) {
	s := newNavState()
	s.with(1, func(n *navStack) { n.Push(StateLang) })

	var got State
	s.with(2, func(n *navStack) { got = n.Current() })
	require.Equal(t, StateRoot, got)

	s.with(1, func(n *navStack) { got = n.Current() })
	require.Equal(t, StateLang, got)
}
