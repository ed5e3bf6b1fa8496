// Package uci implements the Universal Chess Interface line protocol.
// The reply stream is an injected writer; only protocol text is written to
// it, diagnostics go through the logger.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/mcc/internal/board"
	"github.com/hailam/mcc/internal/engine"
	"github.com/hailam/mcc/internal/logging"
	"github.com/hailam/mcc/internal/storage"
)

var log = logging.GetLog("uci")

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position *board.Position

	in  io.Reader
	out io.Writer

	// Current game as set up by position commands, for the archive.
	startFEN string
	played   []board.Move

	store *storage.Store
}

// New creates a UCI protocol handler reading commands from in and writing
// replies to out.
func New(eng *engine.Engine, in io.Reader, out io.Writer) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
		in:       in,
		out:      out,
		startFEN: board.StartFEN,
	}
}

// AttachStore attaches a game archive. Finished games are saved on
// ucinewgame and quit.
func (u *UCI) AttachStore(s *storage.Store) {
	u.store = s
}

// Run processes commands until quit or end of input. Unknown commands are
// ignored, as the protocol requires.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.reply("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo()
		case "stop":
			u.engine.Stop()
		case "quit":
			u.archiveGame()
			return nil
		// Debug commands
		case "d":
			fmt.Fprintln(u.out, u.position.String())
		case "perft":
			u.handlePerft(args)
		default:
			log.Debugf("ignoring unknown command %q", cmd)
		}
	}

	u.archiveGame()
	return scanner.Err()
}

func (u *UCI) reply(format string, a ...any) {
	fmt.Fprintf(u.out, format+"\n", a...)
}

func (u *UCI) handleUCI() {
	u.reply("id name mcc")
	u.reply("id author the mcc developers")
	u.reply("uciok")
}

func (u *UCI) handleNewGame() {
	u.archiveGame()
	u.position = board.NewPosition()
	u.startFEN = board.StartFEN
	u.played = nil
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos [moves e2e4 ...]
//   - position fen <fen fields> [moves e2e4 ...]
//
// A bad FEN keeps the prior position. A bad or illegal move token keeps the
// moves applied up to that token and discards the rest.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesIdx := -1
	for i, arg := range args {
		if arg == "moves" {
			movesIdx = i
			break
		}
	}
	moveStart := len(args)
	fenEnd := len(args)
	if movesIdx >= 0 {
		moveStart = movesIdx + 1
		fenEnd = movesIdx
	}

	var pos *board.Position
	var startFEN string

	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
		startFEN = board.StartFEN
	case "fen":
		fen := strings.Join(args[1:fenEnd], " ")
		parsed, err := board.ParseFEN(fen)
		if err != nil {
			log.Warningf("position command rejected: %v", err)
			return
		}
		pos = parsed
		startFEN = parsed.ToFEN()
	default:
		return
	}

	var played []board.Move
	for _, tok := range args[moveStart:] {
		m, err := board.ParseMove(tok, pos)
		if err != nil {
			log.Warningf("move list truncated: %v", err)
			break
		}
		if !pos.GenerateLegalMoves().Contains(m) {
			log.Warningf("move list truncated: %v: %s", board.ErrIllegalMove, tok)
			break
		}
		pos.MakeMove(m)
		played = append(played, m)
	}

	u.position = pos
	u.startFEN = startFEN
	u.played = played
}

// handleGo picks a move and replies with it. All go parameters (depth,
// time controls) are accepted and ignored; move choice is random among the
// legal moves.
func (u *UCI) handleGo() {
	best := u.engine.BestMove(u.position)
	u.reply("bestmove %s", best)
}

// handlePerft runs a perft count on the current position (debug verb).
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			log.Warningf("bad perft depth %q", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	nodes := u.engine.Perft(u.position.Copy(), depth)
	elapsed := time.Since(start)

	u.reply("Nodes: %d", nodes)
	u.reply("Time: %v", elapsed)
	if elapsed > 0 {
		u.reply("NPS: %.0f", float64(nodes)/elapsed.Seconds())
	}
}

// archiveGame saves the current game to the store, if one is attached and
// any moves were played.
func (u *UCI) archiveGame() {
	if u.store == nil || len(u.played) == 0 {
		return
	}

	start, err := board.ParseFEN(u.startFEN)
	if err != nil {
		log.Errorf("archive skipped, bad start FEN: %v", err)
		return
	}

	moves := make([]string, len(u.played))
	for i, m := range u.played {
		moves[i] = m.String()
	}

	rec := &storage.GameRecord{
		StartFEN: u.startFEN,
		Moves:    moves,
		SAN:      board.MovesToSAN(start, u.played),
		FinalFEN: u.position.ToFEN(),
		Result:   gameResult(u.position),
	}

	if err := u.store.SaveGame(rec); err != nil {
		log.Errorf("archive failed: %v", err)
		return
	}

	u.played = nil
	log.Infof("archived game %s (%d moves)", rec.ID, len(rec.Moves))
}

// gameResult renders the standard result string for a finished position,
// or "" for a game still in progress.
func gameResult(pos *board.Position) string {
	switch {
	case pos.IsCheckmate():
		if pos.SideToMove == board.White {
			return "0-1"
		}
		return "1-0"
	case pos.IsDraw():
		return "1/2-1/2"
	default:
		return ""
	}
}
