// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/VltrnOne/E9th/bank"
	"github.com/VltrnOne/E9th/log"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Value: string(log.FormatTerminal),
		Usage: "log record format (terminal|json)",
	}
	programFlag = cli.StringFlag{
		Name:  "program",
		Usage: "program identity, base58 or name:<label> (defaults to the built-in program id)",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the account database",
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache",
		Value: bank.DefaultCacheSize,
		Usage: "number of account records kept in memory",
	}
	epochFlag = cli.Uint64Flag{
		Name:  "epoch",
		Usage: "clock epoch seen by the instruction",
	}
	timestampFlag = cli.Uint64Flag{
		Name:  "timestamp",
		Usage: "clock unix timestamp seen by the instruction (defaults to now)",
	}
	accountFlag = cli.StringSliceFlag{
		Name:  "account",
		Usage: "instruction account as <key>[=s|w|sw], in order",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "serve prometheus metrics at this address until interrupted",
	}
	argsFlag = cli.StringFlag{
		Name:  "args",
		Usage: "instruction fields as a YAML mapping",
	}
	legacyFlag = cli.BoolFlag{
		Name:  "legacy",
		Usage: "decode the legacy dialect only",
	}
	kindFlag = cli.StringFlag{
		Name:  "kind",
		Usage: "record kind, guessed from the data length when omitted",
	}
	keyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "read the account data of this key from the database instead of an argument",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "stake owner identity",
	}
	seedFlag = cli.StringFlag{
		Name:  "seed",
		Usage: "extra stake seed",
	}
	lamportsFlag = cli.Uint64Flag{
		Name:  "lamports",
		Usage: "lamports to credit",
	}
	mintFlag = cli.StringFlag{
		Name:  "mint",
		Usage: "token mint identity",
	}
	authorityFlag = cli.StringFlag{
		Name:  "authority",
		Usage: "mint authority identity",
	}
)
