package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are ULIDs: 48 bits of millisecond timestamp followed by 80
// random bits, Crockford base32 encoded to 26 characters. IDs sort by
// creation time, which keeps job listings and log lines in order without
// an external dependency.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

// NewJobID returns a fresh ULID for job identifiers. IDs minted within
// the same millisecond stay ordered through a sequence counter in the
// first two random bytes.
func NewJobID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], ts<<16) // 48-bit timestamp in bytes 0-5
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeBase32(b)
}

// encodeBase32 packs 128 bits into 26 characters, consuming five bits at a
// time from the least significant end. 26 characters hold 130 bits, so the
// leading character carries only the top three bits of the timestamp.
func encodeBase32(b [16]byte) string {
	var out [26]byte
	idx := 25
	var acc uint32
	accBits := 0
	for i := 15; i >= 0; i-- {
		acc |= uint32(b[i]) << accBits
		accBits += 8
		for accBits >= 5 && idx > 0 {
			out[idx] = crockford[acc&31]
			acc >>= 5
			accBits -= 5
			idx--
		}
	}
	out[0] = crockford[acc&31]
	return string(out[:])
}
