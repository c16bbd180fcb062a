package hub

import "context"

// Remote procedure names accepted by the game hub.
const (
	CmdJoinRoom                  = "JoinRoom"
	CmdSetReadyStateToStartGame  = "SetReadyStateToStartGame"
	CmdSendStatements            = "SendStatements"
	CmdSendAnswer                = "SendAnswer"
	CmdSendRewardChoice          = "SendRewardChoice"
	CmdSendReadyStateForNextGame = "SendReadyStateForNextGame"
	CmdKickPlayer                = "KickPlayer"
	CmdReconnect                 = "Reconnect"
	CmdDisconnect                = "Disconnect"
)

type JoinRoomArgs struct {
	RoomCode string `json:"roomCode"`
}

type ReadyStateArgs struct {
	RoomCode string `json:"roomCode"`
	IsReady  bool   `json:"isReady"`
}

// StatementsArgs carries the round submission: two stored facts as the
// truths plus one free-text lie. Selection validity (exactly two distinct
// facts) is the caller's responsibility.
type StatementsArgs struct {
	RoomCode      string `json:"roomCode"`
	Lie           string `json:"lie"`
	FirstTruthID  int64  `json:"firstTruthId"`
	SecondTruthID int64  `json:"secondTruthId"`
}

type AnswerArgs struct {
	RoomCode    string `json:"roomCode"`
	AnswerIndex int    `json:"answerIdx"`
}

type RewardChoiceArgs struct {
	FactID int64 `json:"factId"`
}

type KickPlayerArgs struct {
	RoomCode string `json:"roomCode"`
}

type ReconnectArgs struct {
	RoomCode string `json:"roomCode"`
}

// Each facade call is fire-and-forget: it resolves once the invocation is
// written to the transport, and the caller observes the effect through the
// inbound event that follows. While disconnected the command is dropped.

func (c *Client) JoinRoom(ctx context.Context, roomCode string) error {
	return c.invoke(ctx, CmdJoinRoom, JoinRoomArgs{RoomCode: roomCode})
}

func (c *Client) SetReadyStateToStartGame(ctx context.Context, roomCode string, isReady bool) error {
	return c.invoke(ctx, CmdSetReadyStateToStartGame, ReadyStateArgs{RoomCode: roomCode, IsReady: isReady})
}

func (c *Client) SendStatements(ctx context.Context, roomCode, lie string, firstTruthID, secondTruthID int64) error {
	return c.invoke(ctx, CmdSendStatements, StatementsArgs{
		RoomCode:      roomCode,
		Lie:           lie,
		FirstTruthID:  firstTruthID,
		SecondTruthID: secondTruthID,
	})
}

func (c *Client) SendAnswer(ctx context.Context, roomCode string, answerIdx int) error {
	return c.invoke(ctx, CmdSendAnswer, AnswerArgs{RoomCode: roomCode, AnswerIndex: answerIdx})
}

func (c *Client) SendRewardChoice(ctx context.Context, factID int64) error {
	return c.invoke(ctx, CmdSendRewardChoice, RewardChoiceArgs{FactID: factID})
}

func (c *Client) SendReadyStateForNextGame(ctx context.Context, roomCode string, isReady bool) error {
	return c.invoke(ctx, CmdSendReadyStateForNextGame, ReadyStateArgs{RoomCode: roomCode, IsReady: isReady})
}

func (c *Client) KickPlayer(ctx context.Context, roomCode string) error {
	return c.invoke(ctx, CmdKickPlayer, KickPlayerArgs{RoomCode: roomCode})
}

// Reconnect re-establishes the session after a dropped link: connect (a
// no-op when the link is already up) and announce the room we were in so the
// server replays LoadGameData.
func (c *Client) Reconnect(ctx context.Context, roomCode string) error {
	if err := c.session.Connect(ctx); err != nil {
		return err
	}
	return c.invoke(ctx, CmdReconnect, ReconnectArgs{RoomCode: roomCode})
}

func (c *Client) invoke(ctx context.Context, target string, arg any) error {
	if !c.session.IsConnected() {
		c.log.Debug("command dropped, session not connected", "target", target)
		return nil
	}
	return c.session.Invoke(ctx, target, arg)
}
