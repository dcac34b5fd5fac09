package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/protocol"
)

func newPlayCmd() *cobra.Command {
	var mode string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Queue up and play a match over the game socket",
		Long: `Connect to the game socket, join the matchmaking queue, and play.

Once a round starts, type a word and press enter to submit it.
Other input:
  /chat <message>   send a chat line to your opponents
  /end              vote to end the current round early
  /quit             leave the game and disconnect

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return fmt.Errorf("not logged in; run 'wordbattle auth login' first")
			}
			return playMatch(model.GameMode(mode), jsonOutput)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(model.ModeClassic), "Game mode to queue for")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// playSession tracks the live match state the input loop needs
type playSession struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	gameID  model.GameID
	roundID model.RoundID
}

func (p *playSession) send(cmd protocol.Command) error {
	data, err := protocol.EncodeCommand(cmd)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

func (p *playSession) sendRaw(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

func (p *playSession) current() (model.GameID, model.RoundID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gameID, p.roundID
}

func (p *playSession) setGame(id model.GameID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameID = id
}

func (p *playSession) setRound(id model.RoundID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roundID = id
}

func playMatch(mode model.GameMode, jsonOutput bool) error {
	conn, _, err := websocket.DefaultDialer.Dial(client.WebsocketURL(), nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	sess := &playSession{conn: conn}

	if err := sess.send(protocol.JoinQueue{GameMode: mode}); err != nil {
		return fmt.Errorf("failed to join queue: %w", err)
	}

	if !jsonOutput {
		fmt.Printf("Queued for a %s match. Waiting for opponents...\n", mode)
	}

	// Disconnect cleanly on Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		if gameID, _ := sess.current(); gameID != "" {
			_ = sess.send(protocol.LeaveGame{GameID: gameID})
		} else {
			_ = sess.send(protocol.LeaveQueue{})
		}
		_ = conn.Close()
	}()

	go readInput(sess, jsonOutput)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if !jsonOutput {
				fmt.Println("\nDisconnected")
			}
			return nil
		}

		env, err := protocol.DecodeEnvelope(data)
		if err != nil {
			continue
		}

		switch env.Type {
		case protocol.MessagePing:
			pong, err := protocol.EncodePong()
			if err == nil {
				_ = sess.sendRaw(pong)
			}
		case protocol.MessageEvent:
			ev, err := protocol.DecodeEvent(env.Event)
			if err != nil {
				continue
			}
			if jsonOutput {
				fmt.Println(string(env.Event))
			} else {
				printGameEvent(ev)
			}
			switch e := ev.(type) {
			case protocol.GameCreated:
				sess.setGame(e.GameID)
			case protocol.RoundStarted:
				sess.setRound(e.Round.ID)
			case protocol.GameEnded:
				return nil
			}
		}
	}
}

// readInput turns stdin lines into commands for the active match
func readInput(sess *playSession, jsonOutput bool) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		gameID, roundID := sess.current()

		switch {
		case line == "/quit":
			if gameID != "" {
				_ = sess.send(protocol.LeaveGame{GameID: gameID})
			} else {
				_ = sess.send(protocol.LeaveQueue{})
			}
			return
		case line == "/end":
			if gameID != "" {
				_ = sess.send(protocol.EndRound{GameID: gameID, RoundID: roundID})
			}
		case strings.HasPrefix(line, "/chat "):
			if gameID != "" {
				_ = sess.send(protocol.ChatMessage{GameID: gameID, Message: strings.TrimPrefix(line, "/chat ")})
			}
		default:
			if gameID == "" {
				if !jsonOutput {
					fmt.Println("No active game yet")
				}
				continue
			}
			_ = sess.send(protocol.SubmitWord{GameID: gameID, RoundID: roundID, Word: line})
		}
	}
}

func printGameEvent(ev protocol.Event) {
	ts := time.Now().Format("15:04:05")

	switch e := ev.(type) {
	case protocol.QueueJoined:
		fmt.Printf("[%s] In queue at position %d (~%ds wait)\n", ts, e.Position, e.EstimatedWaitSeconds)
	case protocol.GameCreated:
		names := make([]string, 0, len(e.Players))
		for _, p := range e.Players {
			names = append(names, p.Username)
		}
		fmt.Printf("[%s] Match found (%s): %s\n", ts, e.Mode, strings.Join(names, " vs "))
	case protocol.RoundStarted:
		fmt.Printf("[%s] Round %d! Letters: %s (%ds)\n",
			ts, e.Round.RoundNumber, strings.ToUpper(strings.Join(e.Round.Letters, " ")), e.TimeLimitSeconds)
	case protocol.WordResult:
		if e.Valid {
			fmt.Printf("[%s] %s played %q for %d points\n", ts, e.PlayerID, e.Word, e.Score)
		} else {
			fmt.Printf("[%s] %q is not playable\n", ts, e.Word)
		}
	case protocol.RoundEnded:
		fmt.Printf("[%s] Round %d over.", ts, e.RoundNumber)
		if e.WinningWord != "" {
			fmt.Printf(" Best word: %q by %s.", e.WinningWord, e.WinningPlayerID)
		}
		fmt.Println()
		printScores(e.Scores)
	case protocol.GameEnded:
		fmt.Printf("[%s] Game over (%s).", ts, e.Reason)
		if e.WinnerID != "" {
			fmt.Printf(" Winner: %s.", e.WinnerID)
		} else {
			fmt.Print(" It's a tie.")
		}
		fmt.Println()
		printScores(e.Scores)
	case protocol.ChatReceived:
		fmt.Printf("[%s] <%s> %s\n", ts, e.Username, e.Message)
	case protocol.Error:
		fmt.Printf("[%s] Error: %s (%s)\n", ts, e.Message, e.Code)
	}
}

func printScores(scores map[model.PlayerID]int) {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("  %s: %d\n", id, scores[model.PlayerID(id)])
	}
}
