package state

import (
	"testing"

	"github.com/jwebster45206/graphquest/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// armoury is node 1 (Sword, Coin) -right-> node 2 (final), with node 2
// -left-> node 1.
func armoury(t *testing.T) *scenario.Graph {
	t.Helper()
	hall := scenario.NewNode(1, "Hall", "Racks of weapons", false,
		item(t, "Sword", 10, 5),
		item(t, "Coin", 5, 1),
	)
	gate := scenario.NewNode(2, "Gate", "Daylight", true)
	hall.Link(scenario.Right, gate)
	gate.Link(scenario.Left, hall)
	return scenario.NewGraph(hall, gate)
}

func newMatch(t *testing.T, world *scenario.Graph, rules Rules) *Match {
	t.Helper()
	m, err := NewMatch(world, rules, quietLogger())
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestMatch_SeparateCopies(t *testing.T) {
	world := armoury(t)
	m := newMatch(t, world, DefaultRules())

	assert.NotSame(t, m.Graph(0), m.Graph(1))
	assert.NotSame(t, m.Graph(0).Start, m.Graph(1).Start)
	assert.NotSame(t, world.Start, m.Graph(0).Start)
	assert.Same(t, m.Graph(0).Start, m.Player(0).Current)
	assert.Same(t, m.Graph(1).Start, m.Player(1).Current)
	assert.Nil(t, m.Player(2))
	assert.Nil(t, m.Graph(-1))
}

func TestMatch_PickUpSyncsOtherCopy(t *testing.T) {
	world := armoury(t)
	m := newMatch(t, world, DefaultRules())

	sword, err := m.PickUp(1)
	require.NoError(t, err)
	assert.Equal(t, "Sword", sword.Name)
	assert.Equal(t, 1, m.Turn(), "single-action turn passes after one action")

	other := m.Graph(1).Start
	assert.False(t, other.HasItemNamed("Sword"))
	assert.True(t, other.HasItemNamed("Coin"))
	assert.Equal(t, 1, other.Items.Len())
	assert.Equal(t, 2, world.Start.Items.Len(), "world is untouched")

	// Player 2 now only sees the coin.
	coin, err := m.PickUp(1)
	require.NoError(t, err)
	assert.Equal(t, "Coin", coin.Name)
	assert.Equal(t, 0, m.Graph(0).Start.Items.Len())

	s := m.Scores()
	assert.Equal(t, [NumPlayers]int{10, 5}, s.Players)
	assert.Equal(t, 15, s.Total)
}

func TestSyncItem(t *testing.T) {
	g := armoury(t)
	sword, _ := g.Start.Items.At(0)

	assert.Equal(t, 1, SyncItem(g, 0, sword.ID))
	assert.Equal(t, 0, SyncItem(g, 0, sword.ID))
	assert.Equal(t, 0, SyncItem(g, 9, sword.ID))
	assert.Equal(t, 1, g.Start.Items.Len())
}

func TestMatch_SkipsFinishedPlayer(t *testing.T) {
	m := newMatch(t, armoury(t), DefaultRules())

	_, err := m.Move(scenario.Right)
	require.NoError(t, err)
	assert.Equal(t, Won, m.PlayerStatus(0))
	assert.Equal(t, 1, m.Turn())
	assert.False(t, m.Over())

	_, err = m.PickUp(1)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Turn(), "finished player 1 is skipped")
	_, err = m.PickUp(1)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Turn())

	_, err = m.Move(scenario.Right)
	require.NoError(t, err)
	assert.True(t, m.Over())
	assert.Equal(t, Won, m.PlayerStatus(1))

	_, err = m.Move(scenario.Left)
	assert.ErrorIs(t, err, ErrSessionOver)

	s := m.Scores()
	assert.Equal(t, 0, s.Players[0])
	assert.Equal(t, 15, s.Players[1])
	assert.Equal(t, 15, s.Total)
}

func TestMatch_FailedActionKeepsTurn(t *testing.T) {
	m := newMatch(t, armoury(t), DefaultRules())

	_, err := m.Move(scenario.Up)
	assert.ErrorIs(t, err, ErrNoExit)
	_, err = m.Discard(1)
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Equal(t, 0, m.Turn())
	assert.Equal(t, DefaultStartTime, m.Current().RemainingTime)
}

func TestMatch_MultiActionTurns(t *testing.T) {
	rules := DefaultRules()
	rules.TurnMode = MultiAction
	rules.ActionsPerTurn = 2
	m := newMatch(t, armoury(t), rules)

	assert.Equal(t, 2, m.ActionsLeft())
	_, err := m.PickUp(1)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Turn())
	assert.Equal(t, 1, m.ActionsLeft())

	_, err = m.Move(scenario.Right)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Turn(), "turn passes once the player finishes")
	assert.Equal(t, 2, m.ActionsLeft())

	// Player 2 ends early after one action; player 1 is done so player 2
	// keeps the turn.
	_, err = m.PickUp(1)
	require.NoError(t, err)
	require.NoError(t, m.EndTurn())
	assert.Equal(t, 1, m.Turn())
	assert.Equal(t, 2, m.ActionsLeft())
}

func TestMatch_EndTurnPassesInMultiAction(t *testing.T) {
	rules := DefaultRules()
	rules.TurnMode = MultiAction
	rules.ActionsPerTurn = 3
	m := newMatch(t, armoury(t), rules)

	require.NoError(t, m.EndTurn())
	assert.Equal(t, 1, m.Turn())
	assert.Equal(t, 1, m.Rounds())
}

func TestMatch_Restart(t *testing.T) {
	world := armoury(t)
	m := newMatch(t, world, DefaultRules())

	_, err := m.PickUp(1)
	require.NoError(t, err)
	_, err = m.Move(scenario.Right)
	require.NoError(t, err)

	require.NoError(t, m.Restart())
	assert.Equal(t, 0, m.Turn())
	assert.Equal(t, 0, m.Rounds())
	for i := range NumPlayers {
		assert.Equal(t, 2, m.Graph(i).Start.Items.Len())
		assert.Equal(t, DefaultStartTime, m.Player(i).RemainingTime)
		assert.Equal(t, 0, m.Player(i).Inventory.Len())
	}
	assert.Equal(t, 2, world.Start.Items.Len())
}

func TestMatch_QuitKeepsScores(t *testing.T) {
	m := newMatch(t, armoury(t), DefaultRules())
	_, err := m.PickUp(2)
	require.NoError(t, err)

	m.Quit()
	assert.True(t, m.Over())
	assert.Equal(t, Quit, m.PlayerStatus(0))
	assert.Equal(t, 5, m.Scores().Players[0])
	assert.Equal(t, 5, m.Scores().Total)
	assert.ErrorIs(t, m.EndTurn(), ErrSessionOver)
	assert.ErrorIs(t, m.Restart(), ErrSessionOver)
}

func TestNewMatch_ZeroStartTime(t *testing.T) {
	// Both players are finished before the first turn.
	rules := DefaultRules()
	rules.StartTime = 0
	m := newMatch(t, armoury(t), rules)
	assert.True(t, m.Over())
	assert.Equal(t, Lost, m.PlayerStatus(0))
	assert.Equal(t, Lost, m.PlayerStatus(1))
}

func TestNewMatch_EmptyWorld(t *testing.T) {
	_, err := NewMatch(scenario.NewGraph(), DefaultRules(), quietLogger())
	assert.ErrorIs(t, err, scenario.ErrEmptyGraph)
}

func TestMatch_StatusesSurviveQuit(t *testing.T) {
	m := newMatch(t, armoury(t), DefaultRules())
	_, err := m.Move(scenario.Right)
	require.NoError(t, err)

	m.Quit()
	assert.Equal(t, Won, m.PlayerStatus(0))
	assert.Equal(t, Quit, m.PlayerStatus(1))
	assert.Equal(t, Quit, m.PlayerStatus(5))
}
