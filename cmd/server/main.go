package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kbsweep/minesweeper-solver/internal/config"
	"github.com/kbsweep/minesweeper-solver/internal/logging"
	"github.com/kbsweep/minesweeper-solver/session"
	"github.com/kbsweep/minesweeper-solver/solver"
	"github.com/kbsweep/minesweeper-solver/store"
)

var (
	log = logrus.New()

	configPath string
	cfg        = &config.Config{}

	pg    *store.Postgres
	games = newRegistry()
)

func init() {
	const (
		defaultConfigPath = "/run/config.json"
		usage             = "config file path"
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, usage)
	flag.StringVar(&configPath, "c", defaultConfigPath, usage+" (shorthand)")
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	if err := config.ReadConfig(configPath, cfg); err != nil {
		log.Fatalf("unable to read config %s: %s", configPath, err.Error())
	}

	if err := logging.Setup(log, cfg.Development(), cfg.LogFile); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}
	solver.SetLogger(log)
	session.SetLogger(log)

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	var err error
	pg, err = store.NewPostgres(mainCtx, cfg.Postgres.DbUrl())
	if err != nil {
		log.Fatal("unable to create connection pool: ", err)
	}
	defer pg.Close()
	if err := pg.Ping(mainCtx); err != nil {
		log.Fatal("unable to ping database: ", err)
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: buildHandler(),
		BaseContext: func(l net.Listener) context.Context {
			return mainCtx
		},
	}

	log.Infof("ready to serve @ %s", cfg.Addr)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
