package workflows

import (
	"context"

	"github.com/keyfold/keyfold/internal/keylist"
)

// List returns the keylist entries in on-disk order, for the key table
// printed by the list command.
func List(ctx context.Context, env *Env) ([]keylist.Entry, error) {
	kl, err := env.loadKeylist()
	if err != nil {
		return nil, err
	}
	return kl.Entries(), nil
}
