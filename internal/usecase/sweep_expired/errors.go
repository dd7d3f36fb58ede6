package sweep_expired

import "errors"

var (
	// ErrStorage возвращается, когда не удалось получить список просроченных удержаний
	ErrStorage = errors.New("sweep_expired: storage error")
)
