package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/gopenpgp/v2/crypto"

	kferrors "github.com/keyfold/keyfold/internal/errors"
)

// DoctorResult contains the findings of a key directory health check.
type DoctorResult struct {
	// Entries is the number of keylist entries checked.
	Entries int

	// Problems lists keylist entries whose exported key is missing,
	// unparseable, or belongs to a different key.
	Problems []string

	// Orphans lists .pub files not referenced by any keylist entry.
	Orphans []string
}

// Healthy reports whether no problems were found. Orphans are warnings,
// not problems: an orphaned key file is harmless until someone adds a
// keylist line for it.
func (r *DoctorResult) Healthy() bool {
	return len(r.Problems) == 0
}

// Doctor checks the key directory for the inconsistencies the normal
// workflows tolerate silently: keylist entries without an exported key,
// exported keys that do not parse as armored key material, keys whose
// fingerprint does not match the registered key ID, and key files no
// keylist entry references. Nothing is modified; the result reports what a
// human needs to fix by hand.
func Doctor(ctx context.Context, env *Env) (*DoctorResult, error) {
	result := &DoctorResult{}

	kl, err := env.loadKeylist()
	if err != nil {
		if errors.Is(err, kferrors.ErrMissingKeylist) {
			result.Problems = append(result.Problems, "keylist file is missing")
			return result, nil
		}
		return nil, err
	}

	referenced := make(map[string]bool)
	for _, entry := range kl.Entries() {
		result.Entries++
		referenced[entry.Name+".pub"] = true

		keyPath := env.Dir.KeyPath(entry.Name)
		armored, err := os.ReadFile(keyPath)
		if os.IsNotExist(err) {
			result.Problems = append(result.Problems,
				fmt.Sprintf("%s (%s): exported key file %s.pub is missing", entry.Name, entry.KeyID, entry.Name))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", keyPath, err)
		}

		key, err := crypto.NewKeyFromArmored(string(armored))
		if err != nil {
			result.Problems = append(result.Problems,
				fmt.Sprintf("%s (%s): %s.pub is not a valid armored key", entry.Name, entry.KeyID, entry.Name))
			continue
		}

		fingerprint := strings.ToUpper(key.GetFingerprint())
		if !strings.HasSuffix(fingerprint, strings.ToUpper(entry.KeyID)) {
			result.Problems = append(result.Problems,
				fmt.Sprintf("%s: key ID %s does not match fingerprint %s of %s.pub",
					entry.Name, entry.KeyID, fingerprint, entry.Name))
		}
	}

	// Key files nobody references.
	files, err := os.ReadDir(env.Dir.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read key directory %s: %w", env.Dir.Path, err)
	}
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || filepath.Ext(name) != ".pub" {
			continue
		}
		if !referenced[name] {
			result.Orphans = append(result.Orphans, name)
		}
	}

	return result, nil
}
