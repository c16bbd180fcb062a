package hub

// Inbound event names pushed by the game hub. Each maps to exactly one pure
// transition in dispatch.go.
const (
	EvtReceiveRoomUpdate      = "ReceiveRoomUpdate"
	EvtReceivePlayerReadiness = "ReceivePlayerReadiness"
	EvtInitPlayer             = "InitPlayer"
	EvtInitPreparationPhase   = "InitPreparationPhase"
	EvtInitPlayingPhase       = "InitPlayingPhase"
	EvtInitResultPhase        = "InitResultPhase"
	EvtSetGamePhase           = "SetGamePhase"
	EvtPlayerJoined           = "PlayerJoined"
	EvtPlayer2LeaveRoom       = "Player2LeaveRoom"
	EvtLoadGameData           = "LoadGameData"
	EvtDisconnect             = "Disconnect"
)

type ReadinessPayload struct {
	IsPlayer1Ready bool `json:"isPlayer1Ready"`
	IsPlayer2Ready bool `json:"isPlayer2Ready"`
}

type InitPlayerPayload struct {
	Player1 *PlayerData `json:"player1"`
	Player2 *PlayerData `json:"player2"`
}

type InitPreparationPayload struct {
	PlayerFacts [][]Fact `json:"playerFacts"`
}

type InitPlayingPayload struct {
	OpponentStatements []Statement `json:"opponentStatements"`
}

// InitResultPayload carries both players' outcomes; the transition keeps the
// flag matching the local slot and folds the scores into both player records.
type InitResultPayload struct {
	IsPlayer1Correct bool   `json:"isPlayer1Correct"`
	IsPlayer2Correct bool   `json:"isPlayer2Correct"`
	RewardFacts      []Fact `json:"rewardStatements"`
	Player1Score     int    `json:"player1Score"`
	Player2Score     int    `json:"player2Score"`
}

type SetGamePhasePayload struct {
	Phase GamePhase `json:"phase"`
}

type PlayerJoinedPayload struct {
	Slot PlayerSlot `json:"slot"`
}

type AllPlayerData struct {
	Player1 *PlayerData `json:"player1"`
	Player2 *PlayerData `json:"player2"`
}

// LoadGameDataPayload is the full-state resync the server replays after a
// reconnect. Only the phase payload matching Phase is transmitted; the other
// two stay untouched on the client.
type LoadGameDataPayload struct {
	RoomCode      string                  `json:"roomCode"`
	Phase         GamePhase               `json:"phase"`
	Slot          PlayerSlot              `json:"slot"`
	AllPlayerData AllPlayerData           `json:"allPlayerData"`
	Preparation   *InitPreparationPayload `json:"preparationPhaseData,omitempty"`
	Playing       *PlayingData            `json:"playingPhaseData,omitempty"`
	Result        *InitResultPayload      `json:"resultPhaseData,omitempty"`
}
