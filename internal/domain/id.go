package domain

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// NewCanisterID generates an opaque canister identifier of the form
// "GC-" + 6 hex chars + 4 digits, 13 characters total. Both parts are drawn
// from a single random UUID.
func NewCanisterID() string {
	u := uuid.New()
	hexPart := hex.EncodeToString(u[:3])
	digits := binary.BigEndian.Uint16(u[4:6]) % 10000
	return fmt.Sprintf("GC-%s%04d", hexPart, digits)
}
