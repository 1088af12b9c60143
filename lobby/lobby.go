// Package lobby admits waiting players, matches them by size preference,
// and deals the resulting game.
package lobby

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/lazharichir/missingparts/cards"
	"github.com/lazharichir/missingparts/engine"
)

// GameStore is the subset of store.Store the lobby needs: it never reads
// games back, only creates them.
type GameStore interface {
	CreateGame(snap engine.Snapshot) (gameID string)
}

// SessionRegistrar is the subset of session.Registry the lobby needs to
// mint and upgrade bearer tokens as players move from lobby to game.
type SessionRegistrar interface {
	RegisterLobbySession(idInLobby int) (token string, err error)
	UpgradeToGameSession(token string, gameID string, playerIDInGame int) error
}

// ErrInvalidSizePreferences is returned by Join when 2 <= min <= max does
// not hold.
var ErrInvalidSizePreferences = errors.New("InvalidSizePreferences")

// player is a waiting entry: unexported, since the rest of the system
// only ever needs the token/assignment surface exposed by Join and Poll.
// token is the lobby session minted at Join time; formGame upgrades it
// in place to a game session for whichever seat matchmaking assigns, so
// every matched player's token keeps authorizing them, not just the one
// whose own call happened to close the group (spec §3: "the token is
// reused").
type player struct {
	idInLobby int
	minSize   int
	maxSize   int
	isTester  bool
	token     string
}

// JoinResult is the sum type Join returns.
type JoinResult interface {
	isJoinResult()
}

// Joined is returned when the new player must keep waiting.
type Joined struct {
	Token     string
	IDInLobby int
}

func (Joined) isJoinResult() {}

// JoinedGameDirectly is returned when the new player's join immediately
// closed an outstanding match.
type JoinedGameDirectly struct {
	Token          string
	GameID         string
	PlayerIDInGame int
}

func (JoinedGameDirectly) isJoinResult() {}

// Assignment is what Poll reports once matchmaking has placed a player.
type Assignment struct {
	GameID         string
	PlayerIDInGame int
}

// Lobby is a single exclusion unit (spec §5): Join and the matchmaking
// pass it triggers never interleave with each other.
type Lobby struct {
	mu sync.Mutex

	waiting []*player
	nextID  int

	assignments map[int]Assignment // idInLobby -> where it landed, once matched

	rng          *rand.Rand
	maxGroupSize int
	openingHand  int

	store    GameStore
	sessions SessionRegistrar
}

// Config carries the policy knobs spec §4.4/§9 leave as deterministic
// implementation decisions (see DESIGN.md).
type Config struct {
	// MaxGroupSize bounds the matchmaking search's candidate size k.
	MaxGroupSize int
	// OpeningHandSize is how many cards each player is dealt before the
	// remainder becomes the draw pile.
	OpeningHandSize int
}

// DefaultConfig is the policy used when the caller has no overrides.
func DefaultConfig() Config {
	return Config{MaxGroupSize: 6, OpeningHandSize: 4}
}

// New builds a Lobby. rng must be a seeded *rand.Rand for reproducible
// tests; main builds it once at process start via config.ProcessConfig.Rand
// (spec §9: "all randomness ... must flow from an injected source").
func New(rng *rand.Rand, cfg Config, store GameStore, sessions SessionRegistrar) *Lobby {
	return &Lobby{
		waiting:      nil,
		assignments:  make(map[int]Assignment),
		rng:          rng,
		maxGroupSize: cfg.MaxGroupSize,
		openingHand:  cfg.OpeningHandSize,
		store:        store,
		sessions:     sessions,
	}
}

// Join admits a new waiting player and immediately attempts a
// matchmaking pass (spec §4.4): if the new arrival closes a group,
// JoinedGameDirectly is returned instead of Joined.
func (l *Lobby) Join(minSize, maxSize int) (JoinResult, error) {
	if minSize < 2 || minSize > maxSize {
		return nil, ErrInvalidSizePreferences
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++

	token, err := l.sessions.RegisterLobbySession(id)
	if err != nil {
		return nil, err
	}

	p := &player{idInLobby: id, minSize: minSize, maxSize: maxSize, token: token}
	l.waiting = append(l.waiting, p)

	l.runMatchmaking()

	if assignment, ok := l.assignments[id]; ok {
		delete(l.assignments, id)
		// formGame already upgraded token to a game session for this seat.
		return JoinedGameDirectly{Token: token, GameID: assignment.GameID, PlayerIDInGame: assignment.PlayerIDInGame}, nil
	}

	return Joined{Token: token, IDInLobby: id}, nil
}

// MarkTester flags a waiting player as a tester, honored only by
// CheatGetCards once their game starts. This is the side-channel spec
// §4.4 reserves for tests; no production code path sets it.
func (l *Lobby) MarkTester(idInLobby int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.waiting {
		if p.idInLobby == idInLobby {
			p.isTester = true
			return true
		}
	}
	return false
}

// Poll reports the game assignment for idInLobby, if matchmaking has
// placed them since they joined. A lobby player's Unmatched->Matched
// transition is observed at most once in the sense that once an
// assignment exists it never changes (spec §5).
func (l *Lobby) Poll(idInLobby int) (Assignment, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.assignments[idInLobby]
	return a, ok
}

// WaitingPlayerSnapshot is a read-only view of one waiting entry, for
// diagnostics dumps.
type WaitingPlayerSnapshot struct {
	IDInLobby int
	MinSize   int
	MaxSize   int
	IsTester  bool
}

// LobbySnapshot is what Snapshot returns: enough to render a human
// dump without exposing the unexported player type.
type LobbySnapshot struct {
	Waiting []WaitingPlayerSnapshot
}

// Snapshot returns a read-only view of the waiting list, for
// diagnostics.DumpLobby.
func (l *Lobby) Snapshot() any {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := LobbySnapshot{Waiting: make([]WaitingPlayerSnapshot, len(l.waiting))}
	for i, p := range l.waiting {
		out.Waiting[i] = WaitingPlayerSnapshot{
			IDInLobby: p.idInLobby,
			MinSize:   p.minSize,
			MaxSize:   p.maxSize,
			IsTester:  p.isTester,
		}
	}
	return out
}

// runMatchmaking repeatedly forms the largest eligible group until no
// further group can be formed. Caller must hold l.mu.
func (l *Lobby) runMatchmaking() {
	for l.matchOnce() {
	}
}

// matchOnce implements the policy from spec §4.4: waiting players are
// already kept in id_in_lobby ascending order (ids are assigned
// monotonically and removal never reorders the slice), so candidate
// groups are simply prefixes of the waiting list. For each candidate size
// k from maxGroupSize down to 2, check whether the first k waiting
// players' preference intervals jointly intersect at exactly k.
func (l *Lobby) matchOnce() bool {
	maxK := l.maxGroupSize
	if maxK > len(l.waiting) {
		maxK = len(l.waiting)
	}

	for k := maxK; k >= 2; k-- {
		group := l.waiting[:k]
		lowerBound, upperBound := 0, int(^uint(0)>>1)
		for _, p := range group {
			if p.minSize > lowerBound {
				lowerBound = p.minSize
			}
			if p.maxSize < upperBound {
				upperBound = p.maxSize
			}
		}
		if lowerBound <= k && k <= upperBound {
			l.formGame(group)
			l.waiting = l.waiting[k:]
			return true
		}
	}
	return false
}

// formGame shuffles a fresh deck, deals missing parts and opening hands to
// group in order, creates the game, and upgrades every member's existing
// lobby token to a game session for their seat (spec §3) in addition to
// recording their assignment for Poll. Caller must hold l.mu.
func (l *Lobby) formGame(group []*player) {
	k := len(group)
	deck := cards.Shuffle(cards.NewDeck52(), l.rng)
	draw := cards.Stack(deck)

	players := make([]engine.Player, k)
	for i := 0; i < k; i++ {
		missingPart, _ := draw.PopTop()
		players[i] = engine.NewUnboundedPlayer(missingPart, group[i].isTester)
	}

	for card := 0; card < l.openingHand; card++ {
		for i := 0; i < k; i++ {
			dealt, ok := draw.PopTop()
			if !ok {
				break
			}
			players[i].GatheredParts = append(players[i].GatheredParts, dealt)
		}
	}

	snap := engine.Snapshot{
		Players: players,
		Draw:    draw,
		Discard: cards.Stack{},
		State:   engine.WaitingForPlayerAction{Player: 0},
	}

	gameID := l.store.CreateGame(snap)

	for i, p := range group {
		l.assignments[p.idInLobby] = Assignment{GameID: gameID, PlayerIDInGame: i}
		if err := l.sessions.UpgradeToGameSession(p.token, gameID, i); err != nil {
			panic("lobby: waiting player has no lobby session to upgrade: " + err.Error())
		}
	}
}
