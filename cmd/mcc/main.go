// Command mcc is the UCI chess engine binary. It speaks the UCI protocol
// on stdin/stdout; any other transport (a WebSocket bridge, a GUI) is
// expected to frame lines onto these streams.
package main

import (
	"flag"
	"os"

	"github.com/hailam/mcc/internal/engine"
	"github.com/hailam/mcc/internal/logging"
	"github.com/hailam/mcc/internal/storage"
	"github.com/hailam/mcc/internal/uci"
)

var (
	dataDir  = flag.String("data", "", "directory for the game archive (empty disables archiving)")
	logLevel = flag.String("loglevel", "info", "log level: debug, info, warning, error")
)

var log = logging.GetLog("main")

func main() {
	flag.Parse()
	logging.SetLevel(*logLevel)

	protocol := uci.New(engine.New(), os.Stdin, os.Stdout)

	// The archive is best-effort; the engine runs without it.
	if *dataDir != "" {
		store, err := storage.Open(*dataDir)
		if err != nil {
			log.Warningf("game archive disabled: %v", err)
		} else {
			defer store.Close()

			prefs, err := store.LoadPreferences()
			if err != nil || prefs.ArchiveGames {
				protocol.AttachStore(store)
			}
		}
	}

	if err := protocol.Run(); err != nil {
		log.Errorf("input stream failed: %v", err)
		os.Exit(1)
	}
}
