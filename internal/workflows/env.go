package workflows

import (
	"fmt"

	"github.com/keyfold/keyfold/internal/gpg"
	"github.com/keyfold/keyfold/internal/keydir"
	"github.com/keyfold/keyfold/internal/keylist"
	logger "github.com/keyfold/keyfold/internal/logging"
)

// Env carries everything a workflow needs for one command invocation: the
// resolved key directory, the crypto provider, and the operator's identity.
// A fresh Env is built per invocation; nothing in this package holds
// process-wide state.
type Env struct {
	// Dir is the authoritative key directory for this invocation.
	Dir *keydir.Dir

	// Provider performs all asymmetric cryptography.
	Provider gpg.Provider

	// LocalID is the operator's own key reference, used for decryption and
	// key signing. Empty means the provider's default identity.
	LocalID string

	// Log receives progress output.
	Log logger.Logger
}

// loadKeylist loads the keylist from the key directory. Every workflow that
// needs the recipient mapping goes through here, so the mapping is always
// re-read from disk rather than cached across operations.
func (e *Env) loadKeylist() (*keylist.Keylist, error) {
	kl, err := keylist.Load(e.Dir.KeylistPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load keylist: %w", err)
	}
	e.Log.Debugf("Loaded keylist with %d entries from %s", kl.Len(), e.Dir.KeylistPath())
	return kl, nil
}
