// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/inconshreveable/log15"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/meterio/nft-auction/co"
	"github.com/meterio/nft-auction/genesis"
	"github.com/meterio/nft-auction/logdb"
	"github.com/meterio/nft-auction/lvldb"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/runtime"
	"github.com/meterio/nft-auction/script"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cli "gopkg.in/urfave/cli.v1"
)

// maxClockOffset is the drift tolerated before ledger times become suspicious.
const maxClockOffset = 5 * time.Second

func initLogger(ctx *cli.Context) {
	logLevel := ctx.Int(verbosityFlag.Name)
	color := isatty.IsTerminal(os.Stderr.Fd())

	format := log15.LogfmtFormat()
	if color {
		format = log15.TerminalFormat()
	}
	log15.Root().SetHandler(log15.LvlFilterHandler(log15.Lvl(logLevel), log15.StreamHandler(os.Stderr, format)))

	level := slog.LevelError
	switch {
	case logLevel >= int(log15.LvlDebug):
		level = slog.LevelDebug
	case logLevel == int(log15.LvlInfo):
		level = slog.LevelInfo
	case logLevel == int(log15.LvlWarn):
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    !color,
	})))
}

func selectGenesis(ctx *cli.Context) *genesis.Genesis {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet()
	}
	config, err := genesis.LoadConfig(path)
	if err != nil {
		fatal(fmt.Sprintf("load genesis [%v]: %v", path, err))
	}
	gene, err := genesis.New(config)
	if err != nil {
		fatal("build genesis:", err)
	}
	return gene
}

func checkClockOffset(ctx *cli.Context) {
	server := ctx.String(ntpServerFlag.Name)
	if server == "" {
		return
	}
	resp, err := ntp.Query(server)
	if err != nil {
		log.Debug("failed to access NTP", "server", server, "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > maxClockOffset {
		log.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

func openMainDB(ctx *cli.Context, dataDir string) *lvldb.LevelDB {
	if dataDir == "" {
		db, err := lvldb.NewMem()
		if err != nil {
			fatal("open in-memory database:", err)
		}
		return db
	}

	if _, err := fdlimit.Raise(5120); err != nil {
		fatal("failed to increase fd limit", err)
	}
	limit, err := fdlimit.Current()
	if err != nil {
		fatal("failed to get fd limit:", err)
	}
	if limit <= 1024 {
		log.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	fileCache := limit / 2
	if fileCache > 1024 {
		fileCache = 1024
	}

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: fileCache,
	})
	if err != nil {
		fatal(fmt.Sprintf("open ledger database [%v]: %v", dir, err))
	}
	return db
}

func openLogDB(ctx *cli.Context, dataDir string) *logdb.LogDB {
	if dataDir == "" {
		db, err := logdb.NewMem()
		if err != nil {
			fatal("open in-memory log database:", err)
		}
		return db
	}
	dir := filepath.Join(dataDir, "logs.db")
	db, err := logdb.New(dir)
	if err != nil {
		fatal(fmt.Sprintf("open log database [%v]: %v", dir, err))
	}
	return db
}

func initLedger(gene *genesis.Genesis, mainDB *lvldb.LevelDB, logDB *logdb.LogDB) {
	events, err := gene.Build(mainDB)
	if err != nil {
		fatal("build genesis: ", err)
	}
	if len(events) == 0 {
		return
	}
	if err := logDB.Prepare(logdb.LedgerRef{Number: 0, Time: gene.LaunchTime()}).
		ForTransaction(meter.Bytes32{}, meter.Address{}).
		Insert(events, nil).Commit(); err != nil {
		fatal("write genesis events: ", err)
	}
}

func startAPIServer(ctx *cli.Context, handler http.Handler, genesisID meter.Bytes32) (string, func()) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen API addr [%v]: %v", addr, err))
	}
	timeout := ctx.Int(apiTimeoutFlag.Name)
	if timeout > 0 {
		handler = handleAPITimeout(handler, time.Duration(timeout)*time.Millisecond)
	}
	handler = handleXGenesisID(handler, genesisID)
	handler = requestBodyLimit(handler)
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("API server stopped", "err", err)
		}
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		goes.Wait()
	}
}

func startObserveServer(ctx *cli.Context) (string, func()) {
	addr := ctx.String(metricsAddrFlag.Name)
	if addr == "" {
		return "", func() {}
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen observe addr [%v]: %v", addr, err))
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(fullVersion()))
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("observe server stopped", "err", err)
		}
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		goes.Wait()
	}
}

func printStartupMessage(gene *genesis.Genesis, ledger *runtime.Ledger, modules []*script.Module, dataDir string, apiURL string, observeURL string) {
	best := ledger.Best()
	if dataDir == "" {
		dataDir = "Memory"
	}
	if observeURL == "" {
		observeURL = "Disabled"
	}

	fmt.Printf(`Starting %v
    Network         [ %v %v ]
    Chain tag       [ 0x%x ]
    Best ledger     [ #%v @%v ]
    Modules         [ %v ]
    Instance dir    [ %v ]
    API portal      [ %v ]
    Observe portal  [ %v ]
`,
		fullVersion(),
		gene.ID(), gene.Name(),
		gene.ChainTag(),
		best.Number, time.Unix(int64(best.Time), 0),
		modules,
		dataDir,
		apiURL,
		observeURL)
}
