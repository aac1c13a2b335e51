package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation wraps every domain validation failure.
var ErrValidation = errors.New("validation failed")

var validate = validator.New()

// Validate checks pack invariants: id, title, origin, and owner for private packs.
func (p *TechniquePack) Validate() error {
	return check(p)
}

// Validate checks roster invariants. Days must be non-empty and within 0..6.
func (k *Klass) Validate() error {
	if err := check(k); err != nil {
		return err
	}
	if k.StartDate != "" && k.EndDate != "" && k.EndDate < k.StartDate {
		return fmt.Errorf("%w: endDate before startDate", ErrValidation)
	}
	return nil
}

// Validate checks a planned item's level and mode.
func (it *PlannedItem) Validate() error {
	return check(it)
}

// Validate checks rating bounds.
func (f *FeedbackSubmission) Validate() error {
	return check(f)
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}
