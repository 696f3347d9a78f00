package registration

import (
	"errors"
	"fmt"

	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
)

// InconsistentStateError reports that the locator and the local store no
// longer agree about a participant and nothing will reconcile them
// automatically. It unwraps to every underlying failure.
type InconsistentStateError struct {
	Kind          Kind
	ParticipantID id.ParticipantID
	// Detail says which side believes what, for the operator.
	Detail string
	Errs   []error
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("inconsistent state after %s of %s: %s: %v",
		e.Kind, e.ParticipantID, e.Detail, errors.Join(e.Errs...))
}

func (e *InconsistentStateError) Unwrap() []error {
	return e.Errs
}

func (e *InconsistentStateError) ErrorCode() dErrors.Code {
	return dErrors.CodeInconsistentState
}

// asLocatorError makes sure a locator failure carries CodeLocator whatever
// client produced it.
func asLocatorError(err error, msg string) error {
	if err == nil || dErrors.HasCode(err, dErrors.CodeLocator) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeLocator, msg)
}
