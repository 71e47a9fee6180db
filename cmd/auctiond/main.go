// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/meterio/nft-auction/api"
	"github.com/meterio/nft-auction/genesis"
	"github.com/meterio/nft-auction/runtime"
	"github.com/meterio/nft-auction/script"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
	log       = log15.New()
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "auctiond",
		Usage:     "NFT auction ledger node",
		Copyright: "2020 Meter Foundation <https://meter.io/>",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			persistFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			metricsAddrFlag,
			ntpServerFlag,
			verbosityFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "genesis",
				Usage: "print the genesis id and chain tag",
				Flags: []cli.Flag{
					genesisFlag,
				},
				Action: genesisAction,
			},
			{
				Name:   "dev-accounts",
				Usage:  "list the devnet accounts",
				Action: devAccountsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { log.Info("exited") }()

	initLogger(ctx)
	gene := selectGenesis(ctx)
	checkClockOffset(ctx)

	var dataDir string
	if ctx.Bool(persistFlag.Name) {
		dataDir = makeInstanceDir(ctx, gene)
	}

	mainDB := openMainDB(ctx, dataDir)
	defer func() { log.Info("closing main database..."); mainDB.Close() }()

	logDB := openLogDB(ctx, dataDir)
	defer func() { log.Info("closing log database..."); logDB.Close() }()

	initLedger(gene, mainDB, logDB)
	engine := script.NewScriptEngine()
	ledger := runtime.NewLedger(mainDB, logDB, engine, gene.ChainTag(), runtime.SystemClock)

	apiHandler := api.New(ledger, logDB, gene.ID(), ctx.String(apiCorsFlag.Name))
	apiURL, srvCloser := startAPIServer(ctx, apiHandler, gene.ID())
	defer func() { log.Info("stopping API server..."); srvCloser() }()

	observeURL, observeSrvCloser := startObserveServer(ctx)
	defer func() { log.Info("stopping observe server..."); observeSrvCloser() }()

	printStartupMessage(gene, ledger, engine.Modules(), dataDir, apiURL, observeURL)

	<-exitSignal.Done()
	return nil
}

func genesisAction(ctx *cli.Context) error {
	gene := selectGenesis(ctx)
	fmt.Printf("name: %v\nid: %v\nchain tag: 0x%x\n", gene.Name(), gene.ID(), gene.ChainTag())
	return nil
}

func devAccountsAction(ctx *cli.Context) error {
	for i, acc := range genesis.DevAccounts() {
		fmt.Printf("#%d %v\n", i, acc.Address)
	}
	return nil
}
