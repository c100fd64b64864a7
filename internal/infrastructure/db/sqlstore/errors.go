package sqlstore

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/99minutos/taskhub/internal/core/domain"
)

const pqUniqueViolation = "23505"

// mapUserConflict translates a unique-index violation on users into the
// matching domain conflict. Other errors are returned unchanged.
func mapUserConflict(err error) error {
	detail, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	switch {
	case strings.Contains(detail, "email"):
		return domain.ErrEmailExists
	case strings.Contains(detail, "username"):
		return domain.ErrUsernameExists
	default:
		return err
	}
}

// uniqueViolation reports whether err is a unique constraint failure and
// returns text naming the offending constraint or column.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return pqErr.Constraint + " " + pqErr.Detail, true
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return liteErr.Error(), true
	}
	return "", false
}
