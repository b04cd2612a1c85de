package transcribe

import (
	"strings"
)

// BuildCredentialPool merges the primary key, the numbered keys, and the
// comma-separated batch into one ordered, deduplicated pool. Order is a
// correctness property: the first listed key is tried first.
func BuildCredentialPool(primary string, numbered []string, batch string) []string {
	pool := make([]string, 0, len(numbered)+2)
	seen := make(map[string]struct{})

	add := func(key string) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		pool = append(pool, key)
	}

	add(primary)
	for _, key := range numbered {
		add(key)
	}
	for _, key := range strings.Split(batch, ",") {
		add(key)
	}

	return pool
}
