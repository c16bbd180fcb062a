package hub

// PlayerSlot identifies the seat the local client occupies in the room.
// Assigned by the server on join, reset on disconnect.
type PlayerSlot int

const (
	SlotNone PlayerSlot = iota
	SlotPlayer1
	SlotPlayer2
)

func (s PlayerSlot) String() string {
	switch s {
	case SlotPlayer1:
		return "player1"
	case SlotPlayer2:
		return "player2"
	default:
		return "none"
	}
}

// GamePhase is the coarse round state. The server drives transitions through
// the SetGamePhase event; a round always walks the same cycle.
type GamePhase int

const (
	PhaseNone GamePhase = iota
	PhasePreparation
	PhasePlaying
	PhaseResult
)

func (p GamePhase) String() string {
	switch p {
	case PhasePreparation:
		return "preparation"
	case PhasePlaying:
		return "playing"
	case PhaseResult:
		return "result"
	default:
		return "none"
	}
}

// canAdvanceTo reports whether the cycle none→preparation→playing→result→preparation
// allows moving from p to next.
func (p GamePhase) canAdvanceTo(next GamePhase) bool {
	switch p {
	case PhaseNone:
		return next == PhasePreparation
	case PhasePreparation:
		return next == PhasePlaying
	case PhasePlaying:
		return next == PhaseResult
	case PhaseResult:
		return next == PhasePreparation
	}
	return false
}

type Room struct {
	Name         string `json:"name"`
	JoinCode     string `json:"joinCode"`
	RoomMaster   string `json:"roomMaster"`
	SecondPlayer string `json:"secondPlayer"`
}

type PlayerData struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	IsReady bool   `json:"isReady"`
	Score   int    `json:"score"`
}

// Fact is one stored true statement about a player, identified by the
// server-side fact id. Rewards and preparation choices reference these ids.
type Fact struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// Statement is one of the three claims shown during the playing phase.
// Exactly one of the opponent's three is the lie.
type Statement struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
}

type PreparationData struct {
	PlayerFacts [][]Fact `json:"playerFacts"`
}

type PlayingData struct {
	OpponentStatements []Statement `json:"opponentStatements"`
	PlayerAnswer       *int        `json:"playerAnswer,omitempty"`
}

type ResultData struct {
	IsPlayerCorrect bool   `json:"isPlayerCorrect"`
	RewardFacts     []Fact `json:"rewardStatements,omitempty"`
}

// Snapshot is the complete client-side view of one game session. Transitions
// replace the whole value atomically, so a reader holds either the previous
// or the next snapshot, never a half-applied one.
type Snapshot struct {
	Room    Room
	Slot    PlayerSlot
	Phase   GamePhase
	Player1 *PlayerData
	Player2 *PlayerData

	Preparation PreparationData
	Playing     PlayingData
	Result      ResultData
}

// Local returns the player record for the seat this client occupies, or nil
// when no slot has been assigned yet.
func (s Snapshot) Local() *PlayerData {
	switch s.Slot {
	case SlotPlayer1:
		return s.Player1
	case SlotPlayer2:
		return s.Player2
	}
	return nil
}

// Opponent returns the other seat's player record, or nil.
func (s Snapshot) Opponent() *PlayerData {
	switch s.Slot {
	case SlotPlayer1:
		return s.Player2
	case SlotPlayer2:
		return s.Player1
	}
	return nil
}
