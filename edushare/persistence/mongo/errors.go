package mongo

import (
	"errors"

	"github.com/edushare/edushare/edushare/domain"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// notFound reports whether err is the driver's "no such document/file"
// answer rather than a real failure.
func notFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, mongo.ErrFileNotFound)
}

// translate maps a driver error onto the domain taxonomy. Absence and
// duplicate keys keep their meaning; everything else is a transient backend
// failure.
func translate(err error, format string, args ...any) error {
	switch {
	case err == nil:
		return nil
	case notFound(err):
		return domain.NotFound(format, args...)
	case mongo.IsDuplicateKeyError(err):
		return domain.Conflict(format, args...)
	default:
		return domain.Transient(err, format, args...)
	}
}
