// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/bank"
	"github.com/VltrnOne/E9th/e9th"
	"github.com/VltrnOne/E9th/instruction"
	"github.com/VltrnOne/E9th/log"
	"github.com/VltrnOne/E9th/lvldb"
	"github.com/VltrnOne/E9th/processor"
	"github.com/VltrnOne/E9th/state"
	"github.com/VltrnOne/E9th/xenv"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "cmd")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "e9th"
	app.Usage = "Tooling for the E9th token ledger program"
	app.Copyright = "2025 The E9th developers"
	app.Flags = []cli.Flag{verbosityFlag, logFormatFlag}
	app.Before = initLogger
	app.Commands = []cli.Command{
		{
			Name:      "encode",
			Usage:     "encode an instruction to hex",
			ArgsUsage: "<instruction name>",
			Flags:     []cli.Flag{argsFlag},
			Action:    encodeAction,
		},
		{
			Name:      "decode",
			Usage:     "decode a hex instruction payload",
			ArgsUsage: "<hex>",
			Flags:     []cli.Flag{legacyFlag},
			Action:    decodeAction,
		},
		{
			Name:      "inspect",
			Usage:     "decode account data into a record",
			ArgsUsage: "[hex]",
			Flags:     []cli.Flag{kindFlag, keyFlag, dataDirFlag},
			Action:    inspectAction,
		},
		{
			Name:   "derive",
			Usage:  "print the canonical program addresses",
			Flags:  []cli.Flag{programFlag, ownerFlag, seedFlag},
			Action: deriveAction,
		},
		{
			Name:      "exec",
			Usage:     "execute hex instructions against the account database",
			ArgsUsage: "<hex>...",
			Flags: []cli.Flag{
				programFlag,
				dataDirFlag,
				cacheSizeFlag,
				epochFlag,
				timestampFlag,
				accountFlag,
				metricsAddrFlag,
			},
			Action: execAction,
		},
		{
			Name:      "fund",
			Usage:     "credit lamports to a system account in the database",
			ArgsUsage: "<key>",
			Flags:     []cli.Flag{dataDirFlag, lamportsFlag},
			Action:    fundAction,
		},
		{
			Name:  "token",
			Usage: "manage the token ledger in the database",
			Subcommands: []cli.Command{
				{
					Name:      "create-mint",
					ArgsUsage: "<key>",
					Flags:     []cli.Flag{dataDirFlag, authorityFlag},
					Action:    createMintAction,
				},
				{
					Name:      "create-account",
					ArgsUsage: "<key>",
					Flags:     []cli.Flag{dataDirFlag, mintFlag, ownerFlag},
					Action:    createTokenAccountAction,
				},
			},
		},
		{
			Name:      "replay",
			Usage:     "replay a YAML scenario against an in-memory database",
			ArgsUsage: "<scenario.yaml>",
			Action:    replayAction,
		},
	}
	return app
}

func encodeAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected one instruction name")
	}
	var args yaml.Node
	if s := ctx.String(argsFlag.Name); s != "" {
		if err := yaml.Unmarshal([]byte(s), &args); err != nil {
			return errors.Wrap(err, "parse args")
		}
		// Unmarshal wraps the mapping in a document node
		if args.Kind == yaml.DocumentNode && len(args.Content) == 1 {
			args = *args.Content[0]
		}
	}
	ins, err := buildInstruction(ctx.Args().First(), &args)
	if err != nil {
		return err
	}
	data, err := instruction.Encode(ins)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(data))
	return nil
}

func decodeAction(ctx *cli.Context) error {
	data, err := hexArg(ctx)
	if err != nil {
		return err
	}
	decode := instruction.Decode
	if ctx.Bool(legacyFlag.Name) {
		decode = instruction.DecodeLegacy
	}
	ins, err := decode(data)
	if err != nil {
		return err
	}
	fmt.Println(instructionName(ins))
	spew.Dump(ins)
	return nil
}

func inspectAction(ctx *cli.Context) error {
	var data []byte
	if k := ctx.String(keyFlag.Name); k != "" {
		key, err := e9th.ParseKey(k)
		if err != nil {
			return err
		}
		b, closeBank, err := openBank(ctx)
		if err != nil {
			return err
		}
		defer closeBank()
		r, err := b.Get(key)
		if err != nil {
			return err
		}
		if r == nil {
			return errors.Errorf("account %v not found", key)
		}
		fmt.Printf("owner: %v\nlamports: %d\n", r.Owner, r.Lamports)
		data = r.Data
	} else {
		var err error
		if data, err = hexArg(ctx); err != nil {
			return err
		}
	}

	kind := ctx.String(kindFlag.Name)
	if kind == "" {
		var ok bool
		if kind, ok = kindBySize(len(data)); !ok {
			return errors.Errorf("no record kind is %d bytes long, pass --%s (%s)",
				len(data), kindFlag.Name, strings.Join(state.Kinds(), "|"))
		}
	}
	rec, err := state.NewRecord(kind)
	if err != nil {
		return err
	}
	if err := state.Decode(data, rec); err != nil {
		return err
	}
	fmt.Println(kind)
	spew.Dump(rec)
	return nil
}

func deriveAction(ctx *cli.Context) error {
	program, err := programKey(ctx)
	if err != nil {
		return err
	}
	show := func(name string, key solana.PublicKey, bump uint8, err error) error {
		if err != nil {
			return errors.Wrapf(err, "derive %s", name)
		}
		fmt.Printf("%-14s %v (bump %d)\n", name, key, bump)
		return nil
	}
	fmt.Printf("%-14s %v\n", "program", program)
	key, bump, err := e9th.ProgramStateAddress(program)
	if err := show("program-state", key, bump, err); err != nil {
		return err
	}
	key, bump, err = e9th.TokenConfigAddress(program)
	if err := show("token-config", key, bump, err); err != nil {
		return err
	}
	key, bump, err = e9th.BlacklistAddress(program)
	if err := show("blacklist", key, bump, err); err != nil {
		return err
	}
	if s := ctx.String(ownerFlag.Name); s != "" {
		owner, err := e9th.ParseKey(s)
		if err != nil {
			return err
		}
		seed := []byte(ctx.String(seedFlag.Name))
		key, bump, err = e9th.StakeAddress(program, owner, seed)
		if err := show("stake", key, bump, err); err != nil {
			return err
		}
		key, bump, err = e9th.StakeAddress(program, owner, e9th.SeedStakeEntry)
		if err := show("stake-entry", key, bump, err); err != nil {
			return err
		}
	}
	return nil
}

func execAction(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("expected at least one hex payload")
	}
	program, err := programKey(ctx)
	if err != nil {
		return err
	}
	metas, err := parseMetas(ctx.StringSlice(accountFlag.Name))
	if err != nil {
		return err
	}

	var stopMetrics func()
	if addr := ctx.String(metricsAddrFlag.Name); addr != "" {
		if stopMetrics, err = startMetricsServer(addr); err != nil {
			return err
		}
		defer stopMetrics()
	}

	b, closeBank, err := openBank(ctx)
	if err != nil {
		return err
	}
	defer closeBank()

	clock := &xenv.FixedClock{
		EpochValue:     ctx.Uint64(epochFlag.Name),
		TimestampValue: ctx.Uint64(timestampFlag.Name),
	}
	if !ctx.IsSet(timestampFlag.Name) {
		clock.TimestampValue = uint64(time.Now().Unix())
	}
	proc := processor.New(xenv.New(program, clock, xenv.DefaultRent(), xenv.SystemProvisioner{}, b.Ledger()))

	for i, arg := range ctx.Args() {
		data, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
		if err != nil {
			return errors.Wrapf(err, "payload %d", i)
		}
		err = b.Execute(metas, func(accounts []account.Info) error {
			return proc.Process(accounts, data)
		})
		if err != nil {
			return errors.WithMessagef(err, "payload %d", i)
		}
		logger.Info("payload executed", "index", i)
	}

	if stopMetrics != nil {
		logger.Info("serving metrics, interrupt to exit", "addr", ctx.String(metricsAddrFlag.Name))
		<-handleExitSignal()
	}
	return nil
}

func fundAction(ctx *cli.Context) error {
	key, err := keyArgAt(ctx, 0)
	if err != nil {
		return err
	}
	b, closeBank, err := openBank(ctx)
	if err != nil {
		return err
	}
	defer closeBank()

	r, err := b.Get(key)
	if err != nil {
		return err
	}
	if r == nil {
		r = &bank.Record{Owner: solana.SystemProgramID}
	}
	lamports := ctx.Uint64(lamportsFlag.Name)
	if r.Lamports+lamports < r.Lamports {
		return errors.Errorf("balance of %v overflows", key)
	}
	r.Lamports += lamports
	if err := b.Put(key, r); err != nil {
		return err
	}
	fmt.Printf("%v: %d lamports\n", key, r.Lamports)
	return nil
}

func createMintAction(ctx *cli.Context) error {
	key, err := keyArgAt(ctx, 0)
	if err != nil {
		return err
	}
	authority, err := e9th.ParseKey(ctx.String(authorityFlag.Name))
	if err != nil {
		return err
	}
	b, closeBank, err := openBank(ctx)
	if err != nil {
		return err
	}
	defer closeBank()

	if err := b.Ledger().CreateMint(key, authority); err != nil {
		return err
	}
	return b.Commit()
}

func createTokenAccountAction(ctx *cli.Context) error {
	key, err := keyArgAt(ctx, 0)
	if err != nil {
		return err
	}
	mint, err := e9th.ParseKey(ctx.String(mintFlag.Name))
	if err != nil {
		return err
	}
	owner, err := e9th.ParseKey(ctx.String(ownerFlag.Name))
	if err != nil {
		return err
	}
	b, closeBank, err := openBank(ctx)
	if err != nil {
		return err
	}
	defer closeBank()

	if err := b.Ledger().CreateAccount(key, mint, owner); err != nil {
		return err
	}
	return b.Commit()
}

func replayAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected one scenario file")
	}
	f, err := os.Open(ctx.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	scenario, err := LoadScenario(f)
	if err != nil {
		return err
	}
	db, err := lvldb.NewMem()
	if err != nil {
		return err
	}
	defer db.Close()
	b, err := bank.Open(db, bank.DefaultCacheSize)
	if err != nil {
		return err
	}

	report, err := scenario.Replay(b)
	if report != nil {
		for _, s := range report.Steps {
			logger.Debug("step", "result", s)
		}
		if printErr := report.Print(os.Stdout); printErr != nil && err == nil {
			err = printErr
		}
	}
	return err
}
