package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ComposeKey builds a ledger key "<side>.<section>.<index>".
func ComposeKey(side Side, section string, index int) string {
	return fmt.Sprintf("%s.%s.%d", side, section, index)
}

// ParseKey splits a ledger key into its side, section name and index.
// Section names may themselves contain dots, so the side is taken from the
// first segment and the index from the last.
func ParseKey(key string) (Side, string, int, error) {
	first := strings.Index(key, ".")
	last := strings.LastIndex(key, ".")
	if first < 0 || first == last {
		return "", "", 0, fmt.Errorf("malformed ledger key: %q", key)
	}

	side := Side(key[:first])
	if !side.Valid() {
		return "", "", 0, fmt.Errorf("unknown side in ledger key: %q", key)
	}

	index, err := strconv.Atoi(key[last+1:])
	if err != nil || index < 0 {
		return "", "", 0, fmt.Errorf("bad index in ledger key: %q", key)
	}

	return side, key[first+1 : last], index, nil
}

// MirrorKey returns the same section/index key under the opposite side
// prefix. Pairing is positional: it only corresponds to the same logical
// content when both documents enumerate the section in the same order,
// which is an accepted approximation rather than a guarantee.
func MirrorKey(key string) (string, error) {
	side, section, index, err := ParseKey(key)
	if err != nil {
		return "", err
	}
	return ComposeKey(side.Opposite(), section, index), nil
}
