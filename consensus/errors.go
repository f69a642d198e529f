package consensus

import (
	"errors"
	"fmt"
)

// ErrSubjectNotFound is returned when the row source has no such subject.
var ErrSubjectNotFound = errors.New("subject not found")

// FetchError reports a failed row source fetch. The pipeline is aborted and the
// fetch is not retried.
type FetchError struct {
	Stage string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Outcome is the typed status handed to the dispatch layer.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeWarnings Outcome = "warnings"
	OutcomeFailed   Outcome = "failed"
)

// WarningCode names a data-consistency anomaly.
type WarningCode string

const (
	WarnTelegramShortage     WarningCode = "telegram_shortage"
	WarnTelegramSurplus      WarningCode = "telegram_surplus"
	WarnMissingPosition      WarningCode = "missing_position"
	WarnMissingRankZero      WarningCode = "missing_rank_zero"
	WarnDuplicateAlternative WarningCode = "duplicate_alternative"
	WarnInvalidSlot          WarningCode = "invalid_slot"
)

// Warning is a data-consistency anomaly found while assembling a subject.
// Fields that do not apply are -1.
type Warning struct {
	Code      WarningCode `json:"code"`
	Message   string      `json:"message"`
	LineIndex int         `json:"lineIndex"`
	Position  int         `json:"position"`
	BoxIndex  int         `json:"boxIndex"`
}

func lineWarning(code WarningCode, lineIndex, position int, format string, args ...any) Warning {
	return Warning{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		LineIndex: lineIndex,
		Position:  position,
		BoxIndex:  -1,
	}
}

func boxWarning(code WarningCode, boxIndex int, format string, args ...any) Warning {
	return Warning{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		LineIndex: -1,
		Position:  -1,
		BoxIndex:  boxIndex,
	}
}
