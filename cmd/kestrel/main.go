// Command kestrel is a UCI chess engine.
package main

import (
	"fmt"
	"os"

	"github.com/op/go-logging"
	"github.com/spf13/pflag"

	"github.com/kestrel-engine/kestrel/internal/config"
	"github.com/kestrel-engine/kestrel/internal/engine"
	"github.com/kestrel-engine/kestrel/internal/uci"
)

var log = logging.MustGetLogger("kestrel")

func main() {
	var (
		configPath = pflag.String("config", config.DefaultPath(), "path to the persisted option file")
		debug      = pflag.Bool("debug", false, "enable debug-level logging on stderr")
		bench      = pflag.Int("bench", 0, "run the fixed benchmark suite to the given depth and exit (0 disables)")
	)
	pflag.Parse()

	setupLogging(*debug)

	if *bench > 0 {
		result := engine.Bench(*bench)
		fmt.Println(result.String())
		return
	}

	opts := config.Load(*configPath)
	eng := engine.NewWithOptions(opts)

	log.Info("kestrel starting")
	uci.Loop(os.Stdin, os.Stdout, eng)

	if err := config.Save(*configPath, eng.Options()); err != nil {
		log.Warningf("failed to persist config to %s: %v", *configPath, err)
	}
}

func setupLogging(debug bool) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	level := logging.INFO
	if debug {
		level = logging.DEBUG
	}
	formatter := logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:.4s} %{module} %{message}`,
	)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}
