package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/eruzetaien/KnowMore-sub000/internal/auth"
	"github.com/eruzetaien/KnowMore-sub000/internal/config"
	"github.com/eruzetaien/KnowMore-sub000/internal/hub"
	"github.com/eruzetaien/KnowMore-sub000/internal/rest"
	"github.com/eruzetaien/KnowMore-sub000/internal/transport"
	"golang.org/x/sync/errgroup"
)

var errQuit = errors.New("quit")

// App wires the REST client, the hub client and the interactive terminal
// loop together.
type App struct {
	cfg config.Config
	log *slog.Logger

	tokens *auth.TokenStore
	api    *rest.Client
	client *hub.Client

	out io.Writer
	in  io.Reader
}

func New(cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	tokens := auth.NewTokenStore(cfg.TokenFile)
	if err := tokens.Load(); err != nil {
		return nil, fmt.Errorf("token store: %w", err)
	}

	api := rest.NewClient(cfg.ServerURL, tokens.Token)

	session := transport.NewSession(transport.Config{
		URL:          cfg.HubURL(),
		Token:        tokens.Token,
		DialTimeout:  cfg.DialTimeout,
		PingInterval: cfg.PingInterval,
		MaxRedials:   cfg.MaxRedials,
	}, log)

	client := hub.NewClient(session, log)

	return &App{
		cfg:    cfg,
		log:    log,
		tokens: tokens,
		api:    api,
		client: client,
		out:    os.Stdout,
		in:     os.Stdin,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.client.OnKicked(func() {
		fmt.Fprintln(a.out, "\nyou were removed from the room, back to the lobby")
	})

	g, gctx := errgroup.WithContext(ctx)

	// stdin reading cannot be cancelled, so the reader lives outside the
	// group; it dies with the process
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(a.in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	updates := a.client.Store().Subscribe()
	g.Go(func() error {
		fmt.Fprintln(a.out, "knowmore client, type `help` for commands")
		for {
			select {
			case <-gctx.Done():
				return nil
			case snap := <-updates:
				fmt.Fprint(a.out, renderSnapshot(snap))
			case line, ok := <-lines:
				if !ok {
					return errQuit
				}
				if err := a.exec(gctx, strings.TrimSpace(line)); err != nil {
					if errors.Is(err, errQuit) {
						return errQuit
					}
					fmt.Fprintf(a.out, "error: %v\n", err)
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.client.Disconnect(context.Background())
	})

	err := g.Wait()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (a *App) exec(ctx context.Context, line string) error {
	if line == "" {
		return nil
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	err := a.dispatchCommand(ctx, cmd, args, line)
	if errors.Is(err, rest.ErrUnauthenticated) {
		a.tokens.Clear()
		return errors.New("not logged in (or session expired), use `login <user> <password>`")
	}
	return err
}

func (a *App) dispatchCommand(ctx context.Context, cmd string, args []string, line string) error {
	switch cmd {
	case "help":
		fmt.Fprint(a.out, helpText)
		return nil

	case "quit", "exit":
		return errQuit

	case "login":
		if len(args) != 2 {
			return errors.New("usage: login <user> <password>")
		}
		token, err := a.api.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		if err := a.tokens.Save(token); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "logged in")
		return nil

	case "register":
		if len(args) != 2 {
			return errors.New("usage: register <user> <password>")
		}
		if err := a.api.Register(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "registered, now log in")
		return nil

	case "me":
		p, err := a.api.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s: %s (joined %s)\n", p.Username, p.Description, p.CreatedAt.Format("2006-01-02"))
		return nil

	case "describe":
		desc := strings.TrimSpace(strings.TrimPrefix(line, "describe"))
		if desc == "" {
			return errors.New("usage: describe <text>")
		}
		_, err := a.api.UpdateProfile(ctx, rest.ProfileUpdate{Description: &desc})
		return err

	case "rooms":
		rooms, err := a.api.ListRooms(ctx)
		if err != nil {
			return err
		}
		if len(rooms) == 0 {
			fmt.Fprintln(a.out, "no open rooms")
		}
		for _, r := range rooms {
			fmt.Fprintf(a.out, "  %s  %s\n", r.JoinCode, r.Name)
		}
		return nil

	case "create":
		if len(args) == 0 {
			return errors.New("usage: create <room name>")
		}
		room, err := a.api.CreateRoom(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "room %q created, join code %s\n", room.Name, room.JoinCode)
		return nil

	case "current":
		room, err := a.api.CurrentRoom(ctx)
		if err != nil {
			return err
		}
		if room == nil {
			fmt.Fprintln(a.out, "not in a room")
			return nil
		}
		fmt.Fprintf(a.out, "in room %q (%s)\n", room.Name, room.JoinCode)
		return nil

	case "facts":
		groups, err := a.api.FactGroups(ctx)
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Fprintf(a.out, "%s:\n", g.Name)
			for _, f := range g.Facts {
				fmt.Fprintf(a.out, "  [%d] %s\n", f.ID, f.Description)
			}
		}
		return nil

	case "join":
		if len(args) != 1 {
			return errors.New("usage: join <code>")
		}
		if err := a.client.Connect(ctx); err != nil {
			return err
		}
		return a.client.JoinRoom(ctx, args[0])

	case "reconnect":
		if len(args) != 1 {
			return errors.New("usage: reconnect <code>")
		}
		return a.client.Reconnect(ctx, args[0])

	case "ready", "unready":
		return a.client.SetReadyStateToStartGame(ctx, a.roomCode(), cmd == "ready")

	case "statements":
		// statements <lie text> | <factId> <factId>
		lie, ids, err := splitStatements(strings.TrimPrefix(line, "statements"))
		if err != nil {
			return err
		}
		return a.client.SendStatements(ctx, a.roomCode(), lie, ids[0], ids[1])

	case "answer":
		if len(args) != 1 {
			return errors.New("usage: answer <index>")
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad index %q", args[0])
		}
		return a.client.SendAnswer(ctx, a.roomCode(), idx)

	case "reward":
		if len(args) != 1 {
			return errors.New("usage: reward <factId>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad fact id %q", args[0])
		}
		return a.client.SendRewardChoice(ctx, id)

	case "next":
		return a.client.SendReadyStateForNextGame(ctx, a.roomCode(), true)

	case "kick":
		return a.client.KickPlayer(ctx, a.roomCode())

	case "leave":
		return a.client.Disconnect(ctx)

	default:
		return fmt.Errorf("unknown command %q, try `help`", cmd)
	}
}

func (a *App) roomCode() string {
	return a.client.Store().Snapshot().Room.JoinCode
}

// splitStatements parses "<lie> | <id1> <id2>".
func splitStatements(s string) (string, [2]int64, error) {
	var ids [2]int64
	lie, tail, ok := strings.Cut(s, "|")
	lie = strings.TrimSpace(lie)
	if !ok || lie == "" {
		return "", ids, errors.New("usage: statements <lie text> | <factId> <factId>")
	}
	parts := strings.Fields(tail)
	if len(parts) != 2 {
		return "", ids, errors.New("pick exactly two facts as truths")
	}
	for i, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return "", ids, fmt.Errorf("bad fact id %q", p)
		}
		ids[i] = id
	}
	if ids[0] == ids[1] {
		return "", ids, errors.New("the two truths must be different facts")
	}
	return lie, ids, nil
}

const helpText = `commands:
  login <user> <pass>      log in
  register <user> <pass>   create an account
  me                       show profile
  describe <text>          update profile description
  rooms                    list open rooms
  create <name>            create a room
  current                  show the room you are in
  facts                    list your fact groups
  join <code>              connect and join a room
  reconnect <code>         rejoin after a dropped link
  ready | unready          toggle readiness to start
  statements <lie> | <id> <id>   submit two truths and a lie
  answer <index>           guess the opponent's lie
  reward <factId>          claim a fact after a correct guess
  next                     ready up for the next round
  kick                     kick the second player (room master)
  leave                    leave the room and disconnect
  quit                     exit
`
