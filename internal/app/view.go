package app

import (
	"fmt"
	"strings"

	"github.com/eruzetaien/KnowMore-sub000/internal/hub"
)

// renderSnapshot formats the session view for the terminal. Pure so it can be
// tested without a live session.
func renderSnapshot(s hub.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "--- room %s", s.Room.JoinCode)
	if s.Room.Name != "" {
		fmt.Fprintf(&b, " (%s)", s.Room.Name)
	}
	fmt.Fprintf(&b, " | you are %s | phase %s ---\n", s.Slot, s.Phase)

	writePlayer(&b, "player1", s.Player1)
	writePlayer(&b, "player2", s.Player2)

	switch s.Phase {
	case hub.PhasePreparation:
		for i, group := range s.Preparation.PlayerFacts {
			fmt.Fprintf(&b, "fact group %d:\n", i+1)
			for _, f := range group {
				fmt.Fprintf(&b, "  [%d] %s\n", f.ID, f.Description)
			}
		}
		b.WriteString("pick two truths and write a lie: statements <lie> | <id> <id>\n")

	case hub.PhasePlaying:
		if opp := s.Opponent(); opp != nil {
			fmt.Fprintf(&b, "%s's statements, which one is the lie?\n", opp.Name)
		} else {
			b.WriteString("which one is the lie?\n")
		}
		for _, st := range s.Playing.OpponentStatements {
			marker := " "
			if s.Playing.PlayerAnswer != nil && *s.Playing.PlayerAnswer == st.Index {
				marker = "*"
			}
			fmt.Fprintf(&b, " %s %d. %s\n", marker, st.Index, st.Description)
		}

	case hub.PhaseResult:
		if s.Result.IsPlayerCorrect {
			b.WriteString("you found the lie!\n")
			if len(s.Result.RewardFacts) > 0 {
				b.WriteString("claim one fact from your opponent: reward <factId>\n")
				for _, f := range s.Result.RewardFacts {
					fmt.Fprintf(&b, "  [%d] %s\n", f.ID, f.Description)
				}
			}
		} else {
			b.WriteString("you were fooled this time\n")
		}
		if me := s.Local(); me != nil {
			fmt.Fprintf(&b, "your score: %d\n", me.Score)
		}
		b.WriteString("type `next` when ready for another round\n")
	}

	return b.String()
}

func writePlayer(b *strings.Builder, label string, p *hub.PlayerData) {
	if p == nil {
		fmt.Fprintf(b, "%s: (empty seat)\n", label)
		return
	}
	ready := "not ready"
	if p.IsReady {
		ready = "ready"
	}
	fmt.Fprintf(b, "%s: %s, score %d, %s\n", label, p.Name, p.Score, ready)
}
