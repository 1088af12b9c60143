// Package diagnostics renders human-readable dumps of a running game,
// lobby, or store for operators and failing tests, the job the
// teacher's Hand.PrintState hand-rolled with string concatenation. Here
// the formatting is delegated to sanity-io/litter, which the teacher's
// go.mod already carried but never exercised.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/sanity-io/litter"

	"github.com/lazharichir/missingparts/engine"
	"github.com/lazharichir/missingparts/store"
)

// litterConfig matches the teacher's intent (a readable, multi-line,
// field-labeled dump) without litter's default type-qualified noise for
// every nested cards.Card.
var litterConfig = litter.Options{
	Compact:           false,
	StripPackageNames: true,
	HideZeroValues:    true,
}

// DumpGame renders a single game's full internal snapshot: every player's
// hidden information included, unlike the public API's Description.
// Intended for operator debug endpoints and test failure output, never
// for anything a client receives.
func DumpGame(g *engine.Game) string {
	snap := g.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Game %s\n", g.ID)
	b.WriteString(strings.Repeat("-", 52))
	b.WriteString("\n")
	b.WriteString(litterConfig.Sdump(snap))
	return b.String()
}

// DumpStore renders every game currently held by s, in the order
// store.Store.All returns them, which is not creation order.
func DumpStore(s *store.Store) string {
	games := s.All()
	var b strings.Builder
	fmt.Fprintf(&b, "GameStore: %d game(s)\n", len(games))
	for _, g := range games {
		b.WriteString(strings.Repeat("=", 52))
		b.WriteString("\n")
		b.WriteString(DumpGame(g))
	}
	return b.String()
}

// LobbyDumper is the subset of lobby.Lobby diagnostics needs: a snapshot
// type a caller can hand to litter directly, so this package never has
// to import lobby's unexported waiting-list internals. *lobby.Lobby
// satisfies it through its Snapshot method.
type LobbyDumper interface {
	Snapshot() any
}

// DumpLobby renders whatever snapshot value l exposes.
func DumpLobby(l LobbyDumper) string {
	var b strings.Builder
	b.WriteString("Lobby\n")
	b.WriteString(strings.Repeat("-", 52))
	b.WriteString("\n")
	b.WriteString(litterConfig.Sdump(l.Snapshot()))
	return b.String()
}
