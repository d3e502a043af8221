// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/hex"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/VltrnOne/E9th/bank"
	"github.com/VltrnOne/E9th/e9th"
	"github.com/VltrnOne/E9th/log"
	"github.com/VltrnOne/E9th/lvldb"
	"github.com/VltrnOne/E9th/metrics"
	"github.com/VltrnOne/E9th/state"
)

func initLogger(ctx *cli.Context) error {
	useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	handler, err := log.NewHandler(os.Stderr, log.Format(ctx.GlobalString(logFormatFlag.Name)), useColor, ctx.GlobalInt(verbosityFlag.Name))
	if err != nil {
		return err
	}
	log.SetDefault(handler)
	return nil
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".e9th")
	}
	return ""
}

// openBank opens the account database under --data-dir.
func openBank(ctx *cli.Context) (*bank.Bank, func(), error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		return nil, nil, errors.Errorf("--%s is required", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, errors.Wrap(err, "create data dir")
	}
	db, err := lvldb.New(filepath.Join(dir, "bank.db"), lvldb.Options{
		CacheSize:              64,
		OpenFilesCacheCapacity: 64,
		Sync:                   true,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "open account database")
	}
	cacheSize := ctx.Int(cacheSizeFlag.Name)
	if cacheSize <= 0 {
		cacheSize = bank.DefaultCacheSize
	}
	b, err := bank.Open(db, cacheSize)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return b, func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close account database", "err", err)
		}
	}, nil
}

func programKey(ctx *cli.Context) (solana.PublicKey, error) {
	if s := ctx.String(programFlag.Name); s != "" {
		return e9th.ParseKey(s)
	}
	return e9th.ProgramID, nil
}

func hexArg(ctx *cli.Context) ([]byte, error) {
	if ctx.NArg() != 1 {
		return nil, errors.New("expected one hex argument")
	}
	data, err := hex.DecodeString(strings.TrimPrefix(ctx.Args().First(), "0x"))
	return data, errors.Wrap(err, "decode hex")
}

func keyArgAt(ctx *cli.Context, i int) (solana.PublicKey, error) {
	if ctx.NArg() <= i {
		return solana.PublicKey{}, errors.Errorf("missing key argument %d", i)
	}
	return e9th.ParseKey(ctx.Args().Get(i))
}

// kindBySize guesses a record kind from its encoded length. Every kind has
// a distinct fixed size.
func kindBySize(n int) (string, bool) {
	switch n {
	case state.LedgerConfigSize:
		return "ledger-config", true
	case state.TokenConfigSize:
		return "token-config", true
	case state.BlacklistSize:
		return "blacklist", true
	case state.StakeAccountSize:
		return "stake-account", true
	case state.StakeEntrySize:
		return "stake-entry", true
	}
	return "", false
}

// startMetricsServer serves prometheus metrics at addr/metrics.
func startMetricsServer(addr string) (func(), error) {
	metrics.InitializePrometheusMetrics()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen metrics addr [%v]", addr)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "err", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("failed to stop metrics server", "err", err)
		}
	}, nil
}

func handleExitSignal() <-chan os.Signal {
	exitSignalCh := make(chan os.Signal, 1)
	signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)
	return exitSignalCh
}
