package repository

import "errors"

// ErrActiveAssignment is returned by AssignmentRepository.Assign when the
// member already holds an assignment whose end date has not passed. The check
// and the insert run in one transaction, so concurrent assign calls for the
// same member cannot both succeed; the service maps this sentinel to a
// business-rule error.
var ErrActiveAssignment = errors.New("member already has an active assignment")
