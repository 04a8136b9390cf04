package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/keyfold/keyfold/internal/audit"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/keylist"
	"github.com/keyfold/keyfold/internal/utils"
)

// ShareOptions configures the share workflow.
type ShareOptions struct {
	// KeyRef is the key to share: a key ID, fingerprint, or any reference
	// the provider can resolve.
	KeyRef string

	// Name is the display name to register the key under. Empty picks
	// <username>_<hostname>.
	Name string
}

// ShareResult describes a completed share.
type ShareResult struct {
	KeyID   string
	Name    string
	KeyPath string
}

// Share exports a local public key into the key directory and registers it
// in the keylist.
//
// An existing <name>.pub makes the whole operation fail with
// ErrKeyAlreadyShared before anything is written. That refusal is a manual
// override safeguard: replacing a shared key means other collaborators'
// ciphertexts silently stop covering the old one, so the operator must
// remove the file and its keylist line by hand first.
func Share(ctx context.Context, env *Env, opts ShareOptions) (*ShareResult, error) {
	name := opts.Name
	if name == "" {
		name = utils.DefaultKeyName()
	} else {
		name = utils.SanitizeKeyName(name)
	}

	keyID, err := env.Provider.ResolveKey(ctx, opts.KeyRef)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve key %q: %w", opts.KeyRef, err)
	}
	env.Log.Debugf("Resolved %q to key ID %s", opts.KeyRef, keyID)

	keyPath := env.Dir.KeyPath(name)
	if _, err := os.Stat(keyPath); err == nil {
		return nil, fmt.Errorf("%s: %w", keyPath, kferrors.ErrKeyAlreadyShared)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for existing key at %s: %w", keyPath, err)
	}

	armored, err := env.Provider.ExportPublicKey(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("failed to export public key: %w", err)
	}

	if err := env.Dir.Ensure(); err != nil {
		return nil, err
	}

	// #nosec G306 -- exported public keys are shared team state.
	if err := os.WriteFile(keyPath, armored, 0644); err != nil {
		return nil, fmt.Errorf("failed to write public key to %s: %w", keyPath, err)
	}
	env.Log.Infof("Exported public key to %s", keyPath)

	// The keylist line is written only after the key file landed, so a
	// failed export never leaves a dangling entry.
	if err := keylist.Append(env.Dir.KeylistPath(), keyID, name); err != nil {
		return nil, err
	}
	env.Log.Infof("Registered %s as %s in keylist", keyID, name)

	audit.Log(env.Dir, audit.Entry{Operation: "share", KeyID: keyID, KeyName: name})

	return &ShareResult{KeyID: keyID, Name: name, KeyPath: keyPath}, nil
}
