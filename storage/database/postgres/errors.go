package pgrepos

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// uniqueViolation is the Postgres error code raised when a uniqueness
// constraint rejects a write. The violated constraint's name tells us which
// domain conflict this is; anything else stays an unrelated storage fault
// and must not be dressed up as a duplicate.
const uniqueViolation = pq.ErrorCode("23505")

// violatedConstraint returns the name of the uniqueness constraint that
// rejected the write, if that is what err is.
func violatedConstraint(err error) (string, bool) {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
