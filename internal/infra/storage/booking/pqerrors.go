package booking

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
)

// execError оборачивает ошибку выполнения, выделяя занятый слот и конфликт сериализации
func execError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s - constraint %s", ErrSlotNotAvailable, op, pqErr.Constraint)
		case pqSerializationFailure:
			return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
