// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheStats(t *testing.T) {
	cs := NewStats("test")
	assert.Zero(t, cs.HitRate())

	cs.Hit()
	cs.Miss()
	hit, miss := cs.Stats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
	assert.Equal(t, 0.5, cs.HitRate())

	cs.Hit()
	assert.Equal(t, int64(3), cs.Hit())
	assert.Equal(t, 0.75, cs.HitRate())
}
