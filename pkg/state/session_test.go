package state

import (
	"testing"

	"github.com/jwebster45206/graphquest/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, world *scenario.Graph, startTime int) *Session {
	t.Helper()
	rules := DefaultRules()
	rules.StartTime = startTime
	s, err := NewSession(world, rules, quietLogger())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSession_PickUpThenWin(t *testing.T) {
	s := newSession(t, coinGraph(t), 10)
	assert.Equal(t, Playing, s.Status())

	_, err := s.PickUp(1)
	require.NoError(t, err)
	assert.Equal(t, 9, s.Player().RemainingTime)

	cost, err := s.Move(scenario.Right)
	require.NoError(t, err)
	assert.Equal(t, 1, cost)

	assert.Equal(t, Won, s.Status())
	assert.Equal(t, 5, s.Score())
	assert.Equal(t, 8, s.Player().RemainingTime)
}

func TestSession_MoveStraightToGoal(t *testing.T) {
	s := newSession(t, coinGraph(t), 10)

	_, err := s.Move(scenario.Right)
	require.NoError(t, err)
	assert.Equal(t, Won, s.Status())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 9, s.Player().RemainingTime)
}

func TestSession_RunOutOfTime(t *testing.T) {
	s := newSession(t, coinGraph(t), 1)

	_, err := s.PickUp(1)
	require.NoError(t, err)
	assert.Equal(t, Lost, s.Status())

	_, err = s.Move(scenario.Right)
	assert.ErrorIs(t, err, ErrSessionOver)
	assert.Equal(t, 5, s.Score())
}

func TestSession_LostBeatsWon(t *testing.T) {
	s := newSession(t, coinGraph(t), 1)

	_, err := s.Move(scenario.Right)
	require.NoError(t, err)
	assert.True(t, s.Player().AtFinal())
	assert.Equal(t, Lost, s.Status())
}

func TestSession_FailedActionsCostNothing(t *testing.T) {
	s := newSession(t, coinGraph(t), 10)

	_, err := s.PickUp(5)
	assert.ErrorIs(t, err, ErrInvalidChoice)
	_, err = s.Discard(1)
	assert.ErrorIs(t, err, ErrInvalidChoice)
	_, err = s.Discard(0)
	assert.ErrorIs(t, err, ErrCancelled)
	_, err = s.Move(scenario.Left)
	assert.ErrorIs(t, err, ErrNoExit)

	assert.Equal(t, 10, s.Player().RemainingTime)
	assert.Equal(t, Playing, s.Status())
}

func TestSession_DoesNotTouchWorld(t *testing.T) {
	world := coinGraph(t)
	s := newSession(t, world, 10)

	_, err := s.PickUp(1)
	require.NoError(t, err)
	_, err = s.Move(scenario.Right)
	require.NoError(t, err)

	assert.Equal(t, 1, world.Start.Items.Len())
	assert.NotSame(t, world.Start, s.Graph().Start)
}

func TestSession_Restart(t *testing.T) {
	world := coinGraph(t)
	s := newSession(t, world, 10)

	_, err := s.PickUp(1)
	require.NoError(t, err)
	_, err = s.Move(scenario.Right)
	require.NoError(t, err)
	require.Equal(t, Won, s.Status())

	require.NoError(t, s.Restart())
	assert.Equal(t, Playing, s.Status())
	assert.Equal(t, 1, s.Restarts())
	assert.Equal(t, 10, s.Player().RemainingTime)
	assert.Equal(t, 0, s.Player().Inventory.Len())
	assert.Equal(t, 1, s.Player().Current.ID)
	assert.Equal(t, 1, s.Graph().Start.Items.Len(), "fresh copy has the coin back")
	assert.Equal(t, 1, world.Start.Items.Len())

	// The restarted copy keeps the world's item identities.
	fresh, _ := s.Graph().Start.Items.At(0)
	orig, _ := world.Start.Items.At(0)
	assert.Equal(t, orig.ID, fresh.ID)
}

func TestSession_QuitKeepsScore(t *testing.T) {
	s := newSession(t, coinGraph(t), 10)
	_, err := s.PickUp(1)
	require.NoError(t, err)

	s.Quit()
	assert.Equal(t, Quit, s.Status())
	assert.Equal(t, 5, s.Score())
	assert.Nil(t, s.Graph())

	_, err = s.PickUp(1)
	assert.ErrorIs(t, err, ErrSessionOver)
	assert.ErrorIs(t, s.Restart(), ErrSessionOver)
}

func TestSession_StartOnFinalNode(t *testing.T) {
	n := scenario.NewNode(1, "Exit", "", true)
	s := newSession(t, scenario.NewGraph(n), 10)
	assert.Equal(t, Won, s.Status())
}

func TestNewSession_EmptyWorld(t *testing.T) {
	_, err := NewSession(scenario.NewGraph(), DefaultRules(), quietLogger())
	assert.ErrorIs(t, err, scenario.ErrEmptyGraph)

	_, err = NewSession(nil, DefaultRules(), quietLogger())
	assert.ErrorIs(t, err, scenario.ErrEmptyGraph)
}
