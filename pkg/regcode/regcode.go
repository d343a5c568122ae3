// Package regcode generates the short public-facing registration numbers issued
// at sign-up time. Codes combine a timestamp component with a randomly seeded
// counter so they are practically collision-free at event scale (low thousands
// of registrations) without consulting the database. Keeping this logic in a
// dedicated package gives the submission pipeline and its tests one shared
// definition of the code format.
package regcode

import (
	"crypto/rand"
	"encoding/binary"
	"strings"
	"sync/atomic"
	"time"
)

// Prefix is the fixed, human-recognizable lead-in of every registration number.
const Prefix = "REG"

// alphabet is Crockford base32: digits and uppercase letters with the
// ambiguous I, L, O, and U removed, so codes survive being read over the phone
// or typed from an SMS.
const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	timeChars    = 7 // seconds since epoch, base32 — covers well past year 3000
	counterChars = 4 // 32^4 distinct values per second
)

// counter is randomly seeded at process start so two instances started in the
// same second do not issue the same sequence.
var counter atomic.Uint32

func init() {
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err == nil {
		counter.Store(binary.BigEndian.Uint32(seed[:]))
	} else {
		counter.Store(uint32(time.Now().UnixNano()))
	}
}

// Generate returns a new registration number of the form REG-XXXXXXX-YYYY:
// a base32 timestamp followed by a base32 counter value. Within one process,
// codes are distinct until the counter wraps (over a million per second);
// across restarts the timestamp component keeps them apart. The code is stable
// once returned — callers must never regenerate it for the same registration.
func Generate() string {
	ts := encode(uint64(time.Now().Unix()), timeChars)
	seq := encode(uint64(counter.Add(1)), counterChars)
	return Prefix + "-" + ts + "-" + seq
}

// Length is the fixed total length of every generated code, separators included.
const Length = len(Prefix) + 1 + timeChars + 1 + counterChars

// encode renders v in base32 using the package alphabet, left-padded with the
// zero digit to exactly width characters. Values wider than width keep only the
// low-order characters, which is what makes the counter component cyclic.
func encode(v uint64, width int) string {
	var b strings.Builder
	b.Grow(width)
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = alphabet[v%uint64(len(alphabet))]
		v /= uint64(len(alphabet))
	}
	b.Write(buf)
	return b.String()
}
