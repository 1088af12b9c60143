package engine

import "fmt"

// ErrorCode enumerates the ActionError taxonomy from the error handling
// design: every rule violation maps to exactly one of these.
type ErrorCode string

const (
	ErrNotYourTurn            ErrorCode = "NotYourTurn"
	ErrInvalidActionForState  ErrorCode = "InvalidActionForState"
	ErrNotEnoughCardsInDraw   ErrorCode = "NotEnoughCardsInDraw"
	ErrCardNotInScavenged     ErrorCode = "CardNotInScavenged"
	ErrCardNotOwned           ErrorCode = "CardNotOwned"
	ErrCardNotInDiscard       ErrorCode = "CardNotInDiscard"
	ErrInvalidPlayerReference ErrorCode = "InvalidPlayerReference"
	ErrEscapeConditionNotMet  ErrorCode = "EscapeConditionNotMet"
	ErrNotATester             ErrorCode = "NotATester"
	ErrWrongNumberOfCards     ErrorCode = "WrongNumberOfCards"
)

// ActionError is the structured value GameRules returns for any rule
// violation. State is left unchanged whenever one is returned.
type ActionError struct {
	Code    ErrorCode
	Message string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newActionError(code ErrorCode, format string, args ...any) *ActionError {
	return &ActionError{Code: code, Message: fmt.Sprintf(format, args...)}
}
