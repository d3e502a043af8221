// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"github.com/VltrnOne/E9th/metrics"
)

var (
	metricAccounts = metrics.LazyLoadGauge("bank_accounts")
	metricCommits  = metrics.LazyLoadCounterVec("bank_executions_total", []string{"outcome"})
)
