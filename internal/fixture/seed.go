package fixture

import (
	"context"

	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/messages"
)

var _ host.MessageStore = (*messages.SQLiteStore)(nil)

// Seed copies the fixture's users and messages into store. It returns the number of messages
// written.
func (f *Fixture) Seed(ctx context.Context, store *messages.SQLiteStore) (int, error) {
	for _, u := range f.userIndex() {
		if err := store.PutUser(ctx, u); err != nil {
			return 0, err
		}
	}
	n := 0
	for _, rec := range f.Records() {
		rec.ID = 0
		if _, err := store.Add(ctx, rec); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
