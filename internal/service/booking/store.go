package booking

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dentique/clinic-api/internal/model"
)

// sessionStore holds in-flight wizard sessions keyed by user ID. Sessions
// expire after the configured TTL; an abandoned wizard leaves no rows
// behind. One session per user, Start replaces any previous one.
//
// Sessions are stored by value. Get hands each caller its own copy and Put
// swaps the whole value back, so concurrent requests for the same user never
// mutate shared memory. Overlapping updates are last-write-wins.
type sessionStore struct {
	c *gocache.Cache
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{c: gocache.New(ttl, 2*ttl)}
}

func (s *sessionStore) Get(userID string) (*model.BookingSession, bool) {
	v, ok := s.c.Get(userID)
	if !ok {
		return nil, false
	}
	session := v.(model.BookingSession)
	return &session, true
}

func (s *sessionStore) Put(session *model.BookingSession) {
	s.c.SetDefault(session.UserID.String(), *session)
}

func (s *sessionStore) Delete(userID string) {
	s.c.Delete(userID)
}
