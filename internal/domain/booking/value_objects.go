package booking

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidPartySize  = errors.New("party size must be positive")
	ErrPartySizeTooLarge = errors.New("party size exceeds maximum")
	ErrEmptyAdminNote    = errors.New("admin note cannot be empty")
	ErrNoteTooLong       = errors.New("note exceeds maximum length")
)

const (
	MaxNoteLength   = 500
	referencePrefix = "BK"
	refSuffixLen    = 4
	refAlphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

type PartySize struct {
	value int
}

func NewPartySize(value, max int) (PartySize, error) {
	if value <= 0 {
		return PartySize{}, ErrInvalidPartySize
	}
	if max > 0 && value > max {
		return PartySize{}, ErrPartySizeTooLarge
	}
	return PartySize{value: value}, nil
}

func (p PartySize) Value() int {
	return p.value
}

// Note is free text attached by the customer (special request) or by the
// admin (decision note). Empty is allowed; the reject path separately
// requires a non-empty one.
type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: trimmed}, nil
}

// NewRequiredNote is NewNote plus a non-empty check, for admin rejections.
func NewRequiredNote(value string) (Note, error) {
	note, err := NewNote(value)
	if err != nil {
		return Note{}, err
	}
	if note.IsEmpty() {
		return Note{}, ErrEmptyAdminNote
	}
	return note, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// Reference is the human-shareable booking code: a fixed prefix, the
// creation time millis in base 36, and a short random suffix. Collisions are
// practically impossible but not ruled out by construction; the unique index
// on the bookings table is authoritative and the engine regenerates once on
// an insert conflict.
type Reference struct {
	value string
}

func NewReference(now time.Time) Reference {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	suffix := make([]byte, refSuffixLen)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(refAlphabet))))
		if err != nil {
			// crypto/rand failing is effectively fatal elsewhere too; fall
			// back to a time-derived character rather than panicking.
			suffix[i] = refAlphabet[now.Nanosecond()%len(refAlphabet)]
			continue
		}
		suffix[i] = refAlphabet[n.Int64()]
	}

	return Reference{value: referencePrefix + ts + string(suffix)}
}

func ReferenceFromString(value string) Reference {
	return Reference{value: value}
}

func (r Reference) String() string {
	return r.value
}
