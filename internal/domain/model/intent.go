package model

import "github.com/bibbank/origination/internal/domain/valueobject"

// Intent is the classified meaning of a free-text assistant message.
// Detail carries the matched purpose or PAN, if any.
type Intent struct {
	Kind   valueobject.IntentKind
	Detail string
}
