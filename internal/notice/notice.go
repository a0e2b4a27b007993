// Package notice keeps short-lived messages shown to a user after an action.
package notice

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/erazemk/bamboorat/internal/docstore"
	"github.com/erazemk/bamboorat/internal/form"
)

// DefaultTTL is how long a notice stays visible unless dismissed.
const DefaultTTL = 6 * time.Second

// Kind is the severity of a notice.
type Kind string

// Notice kinds.
const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// Notice is a single message.
type Notice struct {
	ID      string
	Kind    Kind
	Message string
	Expires time.Time
}

// Board holds the notices of one user.
type Board struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	seq     int
	notices []Notice
}

// NewBoard returns a board whose notices expire after ttl. A zero ttl uses
// DefaultTTL; a nil clock uses time.Now.
func NewBoard(ttl time.Duration, now func() time.Time) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Board{ttl: ttl, now: now}
}

// Push adds a notice and returns its ID.
func (b *Board) Push(kind Kind, msg string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	n := Notice{
		ID:      strconv.Itoa(b.seq),
		Kind:    kind,
		Message: msg,
		Expires: b.now().Add(b.ttl),
	}
	b.notices = append(b.notices, n)
	return n.ID
}

// Error pushes an error notice describing err.
func (b *Board) Error(err error) string {
	return b.Push(KindError, FromError(err))
}

// Active drops expired notices and returns the rest, oldest first.
func (b *Board) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	kept := b.notices[:0]
	for _, n := range b.notices {
		if now.Before(n.Expires) {
			kept = append(kept, n)
		}
	}
	b.notices = kept
	return append([]Notice(nil), kept...)
}

// Dismiss removes a notice. Unknown IDs are ignored.
func (b *Board) Dismiss(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, n := range b.notices {
		if n.ID == id {
			b.notices = append(b.notices[:i], b.notices[i+1:]...)
			return
		}
	}
}

// User-facing messages.
const (
	MsgUnavailable = "ບໍ່ສາມາດເຊື່ອມຕໍ່ຖານຂໍ້ມູນໄດ້"
	MsgDenied      = "ບໍ່ມີສິດເຂົ້າເຖິງຂໍ້ມູນ"
	MsgNotFound    = "ບໍ່ພົບຂໍ້ມູນ"
	MsgGeneric     = "ເກີດຂໍ້ຜິດພາດ"
	MsgNameNeeded  = "ກະລຸນາໃສ່ຊື່"
)

// FromError converts an error into a short message for the user.
func FromError(err error) string {
	switch {
	case errors.Is(err, docstore.ErrBackendUnavailable):
		return MsgUnavailable
	case errors.Is(err, docstore.ErrPermissionDenied):
		return MsgDenied
	case errors.Is(err, docstore.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, form.ErrValidation):
		return MsgNameNeeded
	}
	return MsgGeneric
}
