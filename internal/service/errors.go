package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/planwise/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found (run 'planwise profile set' or 'planwise profile wizard' first)")
	ErrTaskNotFound    = errors.New("task not found")
	ErrAmbiguousTask   = errors.New("task reference is ambiguous")
	ErrGoalExists      = errors.New("goal already exists")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrBlockNotFound   = errors.New("schedule block not found")
)

// mapNotFound replaces repository.ErrNotFound with the service sentinel,
// keeping the repository message.
func mapNotFound(err, sentinel error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return err
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
