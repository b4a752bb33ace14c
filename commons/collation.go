// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"encoding/hex"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKeyMaxLen bounds the stored key so it fits an indexed varchar on every dialect.
const SortKeyMaxLen = 512

var (
	sortKeyMu  sync.Mutex
	collator   = collate.New(language.English, collate.IgnoreCase, collate.IgnoreDiacritics)
	sortKeyBuf collate.Buffer
)

// SortKey returns a hex encoded English collation key for s that ignores case
// and accents. Byte order of two keys matches the collated order of their
// inputs, so the key can be sorted on by any database.
func SortKey(s string) string {
	sortKeyMu.Lock()
	defer sortKeyMu.Unlock()

	sortKeyBuf.Reset()
	key := hex.EncodeToString(collator.KeyFromString(&sortKeyBuf, s))
	if len(key) > SortKeyMaxLen {
		key = key[:SortKeyMaxLen]
	}
	return key
}
