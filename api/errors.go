package api

// AuthError is the authorization half of the error taxonomy from spec §7.
type AuthError string

func (e AuthError) Error() string { return string(e) }

const (
	ErrBadToken                AuthError = "BadToken"
	ErrTokenNotForThisResource AuthError = "TokenNotForThisResource"
)

// RoutingError is the routing half of the error taxonomy from spec §7.
type RoutingError string

func (e RoutingError) Error() string { return string(e) }

const (
	ErrNoSuchGame    RoutingError = "NoSuchGame"
	ErrNoSuchPlayer  RoutingError = "NoSuchPlayer"
	ErrNotMatchedYet RoutingError = "NotMatchedYet"
)
