// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"sort"

	"github.com/pkg/errors"
)

var kinds = map[string]func() Record{
	"ledger-config": func() Record { return &LedgerConfig{} },
	"token-config":  func() Record { return &TokenConfig{} },
	"blacklist":     func() Record { return &Blacklist{} },
	"stake-account": func() Record { return &StakeAccount{} },
	"stake-entry":   func() Record { return &StakeEntry{} },
}

// NewRecord returns an empty record of the named kind.
func NewRecord(kind string) (Record, error) {
	mk, ok := kinds[kind]
	if !ok {
		return nil, errors.Errorf("unknown record kind %q", kind)
	}
	return mk(), nil
}

// Kinds lists the record kind names in order.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
