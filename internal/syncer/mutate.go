package syncer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Mutation is one state-changing action against the backend: validate
// locally, issue the write, then reconcile the affected collections by
// re-fetching rather than patching local state from the write's response.
type Mutation struct {
	// Name identifies the action in notices and logs ("add keyword",
	// "mark contacted", ...).
	Name string
	// Validate runs before any network call. Optional.
	Validate func() error
	// Write issues the backend request.
	Write func(ctx context.Context) error
	// Reconcile lists the members to re-fetch after a successful write.
	Reconcile []Member
}

// Do executes m. On write failure the prior state is left exactly as it
// was, nothing is retried, and the typed error is returned for a one-shot
// notice. On success the affected collections are re-fetched immediately so
// the view reflects backend-confirmed state.
func (s *Synchronizer) Do(ctx context.Context, m Mutation) error {
	if m.Validate != nil {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	if err := m.Write(ctx); err != nil {
		s.log.WithFields(logrus.Fields{
			"page":   s.name,
			"action": m.Name,
		}).WithError(err).Warn("mutation failed")
		return err
	}
	s.Refresh(ctx, m.Reconcile...)
	return nil
}
