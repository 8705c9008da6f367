package booking

import (
	"strings"

	"github.com/google/uuid"
)

const ReferencePrefix = "BK-"

// NewReference returns "BK-" followed by 8 upper-case hex characters.
func NewReference() string {
	id := uuid.New()
	return ReferencePrefix + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func IsReference(s string) bool {
	if !strings.HasPrefix(s, ReferencePrefix) || len(s) != len(ReferencePrefix)+8 {
		return false
	}
	for _, c := range s[len(ReferencePrefix):] {
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
