package hub

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownEvent = errors.New("unknown hub event")

// A transition consumes the previous snapshot and an event payload and
// returns the next snapshot. Transitions never mutate the input (player
// records are copied before being changed), so old snapshots held by readers
// stay valid.
type transition func(Snapshot, json.RawMessage) (Snapshot, error)

var transitions = map[string]transition{
	EvtReceiveRoomUpdate:      applyRoomUpdate,
	EvtReceivePlayerReadiness: applyPlayerReadiness,
	EvtInitPlayer:             applyInitPlayer,
	EvtInitPreparationPhase:   applyInitPreparation,
	EvtInitPlayingPhase:       applyInitPlaying,
	EvtInitResultPhase:        applyInitResult,
	EvtSetGamePhase:           applySetGamePhase,
	EvtPlayerJoined:           applyPlayerJoined,
	EvtPlayer2LeaveRoom:       applyPlayer2Leave,
	EvtLoadGameData:           applyLoadGameData,
}

// Transition applies the named event against prev. Unknown events and
// malformed payloads return prev unchanged together with the error, so a bad
// message can never leave a half-applied snapshot behind.
func Transition(prev Snapshot, event string, payload json.RawMessage) (Snapshot, error) {
	tr, ok := transitions[event]
	if !ok {
		return prev, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return tr(prev, payload)
}

func applyRoomUpdate(s Snapshot, raw json.RawMessage) (Snapshot, error) {
	var room Room
	if err := json.Unmarshal(raw, &room); err != nil {
		return s, fmt.Errorf("ReceiveRoomUpdate: %w", err)
	}
	s.Room = room
	return s, nil
}

func applyPlayerReadiness(s Snapshot, raw json.RawMessage) (Snapshot, error) {
	var p ReadinessPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return s, fmt.Errorf("ReceivePlayerReadiness: %w", err)
	}
	s.Player1 = withReadiness(s.Player1, p.IsPlayer1Ready)
	s.Player2 = withReadiness(s.Player2, p.IsPlayer2Ready)
	return s, nil
}

func applyInitPlayer(s Snapshot, raw json.RawMessage) (Snapshot, error) {
	var p InitPlayerPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return s, fmt.Errorf("InitPlayer: %w", err)
	}
	s.Player1 = p.Player1
	s.Player2 = p.Player2
	return s, nil
}

func applyInitPreparation(s Snapshot, raw json.RawMessage) (Snapshot, error) {
	var p InitPreparationPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return s, fmt.Errorf("InitPreparationPhase: %w", err)
	}
	s.Preparation = PreparationData{PlayerFacts: p.PlayerFacts}
	return s, nil
}

func applyInitPlaying(s Snapshot, raw json.RawMessage) (Snapshot, error) {
	var p InitPlayingPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return s, fmt.Errorf("InitPlayingPhase: %w", err)
	}
	// a fresh playing payload always starts with no answer chosen
	s.Playing = PlayingData{OpponentStatements: p.OpponentStatements}
	return s, nil
}

func applyInitResult(s Snapshot, raw json.RawMessage) (Snapshot, error) {
	var p InitResultPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return s, fmt.Errorf("InitResultPhase: %w", err)
	}
	s.Result = resultFor(s.Slot, p)
	s.Player1 = withScore(s.Player1, p.Player1Score)
	s.Player2 = withScore(s.Player2, p.Player2Score)
	return s, nil
}

func applySetGamePhase(s Snapshot, raw json.RawMessage) (Snapshot, error) {
	var p SetGamePhasePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return s, fmt.Errorf("SetGamePhase: %w", err)
	}
	if !s.Phase.canAdvanceTo(p.Phase) {
		return s, fmt.Errorf("SetGamePhase: illegal transition %s -> %s", s.Phase, p.Phase)
	}
	s.Phase = p.Phase
	return resetReadiness(s), nil
}

func applyPlayerJoined(s Snapshot, raw json.RawMessage) (Snapshot, error) {
	var p PlayerJoinedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return s, fmt.Errorf("PlayerJoined: %w", err)
	}
	s.Slot = p.Slot
	return s, nil
}

func applyPlayer2Leave(s Snapshot, _ json.RawMessage) (Snapshot, error) {
	s.Player2 = nil
	return s, nil
}

func applyLoadGameData(s Snapshot, raw json.RawMessage) (Snapshot, error) {
	var p LoadGameDataPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return s, fmt.Errorf("LoadGameData: %w", err)
	}

	s.Room.JoinCode = p.RoomCode
	s.Phase = p.Phase
	s.Slot = p.Slot
	s.Player1 = p.AllPlayerData.Player1
	s.Player2 = p.AllPlayerData.Player2

	// Only the payload for the transmitted phase is overwritten; the other
	// two keep whatever the client had before the resync.
	switch p.Phase {
	case PhasePreparation:
		if p.Preparation != nil {
			s.Preparation = PreparationData{PlayerFacts: p.Preparation.PlayerFacts}
		}
	case PhasePlaying:
		if p.Playing != nil {
			s.Playing = *p.Playing
		}
	case PhaseResult:
		if p.Result != nil {
			s.Result = resultFor(p.Slot, *p.Result)
			s.Player1 = withScore(s.Player1, p.Result.Player1Score)
			s.Player2 = withScore(s.Player2, p.Result.Player2Score)
		}
	}
	return s, nil
}

// resetReadiness clears both players' ready flags, preserving every other
// field. Applied on every phase change and nowhere else. A nil player stays
// nil.
func resetReadiness(s Snapshot) Snapshot {
	s.Player1 = withReadiness(s.Player1, false)
	s.Player2 = withReadiness(s.Player2, false)
	return s
}

func withReadiness(p *PlayerData, ready bool) *PlayerData {
	if p == nil {
		return nil
	}
	cp := *p
	cp.IsReady = ready
	return &cp
}

func withScore(p *PlayerData, score int) *PlayerData {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Score = score
	return &cp
}

func resultFor(slot PlayerSlot, p InitResultPayload) ResultData {
	correct := p.IsPlayer1Correct
	if slot == SlotPlayer2 {
		correct = p.IsPlayer2Correct
	}
	return ResultData{
		IsPlayerCorrect: correct,
		RewardFacts:     p.RewardFacts,
	}
}
