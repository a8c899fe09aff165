package upload

import (
	"errors"

	"guestgallery/models"
)

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// Result is what a widget session ends with.
type Result struct {
	Outcome Outcome
	Info    *models.AssetInfo
	Err     error
}

func Succeeded(info *models.AssetInfo) Result {
	return Result{Outcome: OutcomeSuccess, Info: info}
}

func Cancelled() Result {
	return Result{Outcome: OutcomeCancelled}
}

func Failed(err error) Result {
	if err == nil {
		err = errors.New("upload failed")
	}
	return Result{Outcome: OutcomeFailed, Err: err}
}
