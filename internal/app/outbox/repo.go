package outbox

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-service/internal/models/m_outbox"
)

// Repo builds outbox mutations; it never applies them.
type Repo struct{}

func NewRepo() *Repo {
	return &Repo{}
}

func (r *Repo) InsertMut(e *Event) *spanner.Mutation {
	if e == nil {
		return nil
	}

	return m_outbox.InsertMutation(e.row())
}

func (r *Repo) MarkProcessedMut(eventID string, at time.Time) *spanner.Mutation {
	if eventID == "" {
		return nil
	}
	return m_outbox.MarkProcessedMutation(eventID, at.UTC())
}
