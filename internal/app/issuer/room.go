package issuer

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"

	"github.com/dkeye/VoiceAgent/internal/domain"
)

// NewRoomName returns prefix followed by a random base-36 fragment.
func NewRoomName(prefix string) (domain.RoomName, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return domain.RoomName(prefix + strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 36)), nil
}
