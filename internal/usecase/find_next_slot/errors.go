package find_next_slot

import "errors"

// ErrStoreUnavailable возвращается, когда не удалось получить слоты одного из дней
var ErrStoreUnavailable = errors.New("find_next_slot: store unavailable")
