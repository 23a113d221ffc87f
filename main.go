package main

import (
	"errors"
	"flag"
	"net/http"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/bossfight/logging"
	"github.com/milk9111/bossfight/metrics"
	"github.com/milk9111/bossfight/prefabs"
	"github.com/milk9111/bossfight/sim"
)

func main() {
	debug := flag.Bool("debug", false, "draw inactive hitboxes and the collision space")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	logLevel := flag.String("log-level", "", "log level (default LOG_LEVEL or info)")
	logFormat := flag.String("log-format", "", "log format: text or json (default LOG_FORMAT or text)")
	metricsAddr := flag.String("metrics", "127.0.0.1:9100", "address for /metrics; empty disables it")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory whose tuning files override the embedded ones")
	watch := flag.Bool("watch", true, "reload tuning files when they change")
	flag.Parse()

	log, err := logging.New(*logLevel, *logFormat)
	if err != nil {
		logrus.WithError(err).Fatal("bad logging flags")
	}
	prefabs.Dir = *prefabDir

	m := metrics.New()
	if *metricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(*metricsAddr, m.Router()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
		log.WithField("addr", *metricsAddr).Info("serving /metrics")
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(*prefabDir, *prefabDir+"/scripts")
		if err != nil {
			log.WithError(err).Warn("tuning hot reload disabled")
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	game, err := NewGame(log, m, watcher, *debug)
	if err != nil {
		log.WithError(err).Fatal("setup failed")
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("bossfight")
	tps := 1/sim.FixedDt + 0.5
	ebiten.SetTPS(int(tps))

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}
