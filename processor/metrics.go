// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package processor

import (
	"github.com/VltrnOne/E9th/metrics"
)

var (
	metricInstructionCount    = metrics.LazyLoadCounterVec("instructions_total", []string{"name", "dialect", "outcome"})
	metricInstructionDuration = metrics.LazyLoadHistogram("instruction_duration_us", metrics.BucketMicros)
)
