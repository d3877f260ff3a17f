package tuimsg

import (
	"github.com/rgehrsitz/fmgo/internal/domain"
)

// CalculateRequestedMsg asks the app to run a projection
type CalculateRequestedMsg struct {
	Request domain.CalculationRequest
}

// CalculationCompleteMsg carries the outcome of a projection
type CalculationCompleteMsg struct {
	Result *domain.CalculationResult
	Err    error
}

// FormClearedMsg signals the form was reset and any shown result is stale
type FormClearedMsg struct{}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
