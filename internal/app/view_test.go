package app

import (
	"testing"

	"github.com/eruzetaien/KnowMore-sub000/internal/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSnapshot_PlayingShowsOnlyOpponentStatements(t *testing.T) {
	answer := 1
	s := hub.Snapshot{
		Room:    hub.Room{JoinCode: "ab12cd", Name: "besties"},
		Slot:    hub.SlotPlayer1,
		Phase:   hub.PhasePlaying,
		Player1: &hub.PlayerData{Name: "A", Score: 1},
		Player2: &hub.PlayerData{Name: "B"},
		Playing: hub.PlayingData{
			OpponentStatements: []hub.Statement{
				{Index: 0, Description: "owns a parrot"},
				{Index: 1, Description: "hates pizza"},
				{Index: 2, Description: "ran a marathon"},
			},
			PlayerAnswer: &answer,
		},
	}

	out := renderSnapshot(s)
	assert.Contains(t, out, "owns a parrot")
	assert.Contains(t, out, "* 1. hates pizza", "the chosen answer is marked")
	assert.Contains(t, out, "you are player1")
}

func TestRenderSnapshot_ResultWithReward(t *testing.T) {
	s := hub.Snapshot{
		Phase: hub.PhaseResult,
		Result: hub.ResultData{
			IsPlayerCorrect: true,
			RewardFacts:     []hub.Fact{{ID: 9, Description: "X"}},
		},
	}

	out := renderSnapshot(s)
	assert.Contains(t, out, "found the lie")
	assert.Contains(t, out, "[9] X")
}

func TestRenderSnapshot_EmptySeat(t *testing.T) {
	s := hub.Snapshot{Player1: &hub.PlayerData{Name: "A"}}
	out := renderSnapshot(s)
	assert.Contains(t, out, "player2: (empty seat)")
}

func TestSplitStatements(t *testing.T) {
	lie, ids, err := splitStatements(" I speak four languages | 3 7")
	require.NoError(t, err)
	assert.Equal(t, "I speak four languages", lie)
	assert.Equal(t, [2]int64{3, 7}, ids)

	_, _, err = splitStatements("no separator here")
	assert.Error(t, err)

	_, _, err = splitStatements("lie | 3")
	assert.Error(t, err, "exactly two truths required")

	_, _, err = splitStatements("lie | 3 3")
	assert.Error(t, err, "truths must be distinct facts")

	_, _, err = splitStatements("lie | 3 x")
	assert.Error(t, err)
}
