// Command replay plays a YAML input timeline through the combat simulation
// without a window and prints the final snapshot.
package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/bossfight/logging"
	"github.com/milk9111/bossfight/prefabs"
	"github.com/milk9111/bossfight/sim"
)

func main() {
	timeline := flag.String("timeline", "", "path to a YAML timeline")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory whose tuning files override the embedded ones")
	trace := flag.Int("trace", 0, "print a snapshot every N ticks (0 disables)")
	logLevel := flag.String("log-level", "warn", "log level")
	logFormat := flag.String("log-format", "", "log format: text or json")
	flag.Parse()

	log, err := logging.NewWithOutput(os.Stderr, *logLevel, *logFormat)
	if err != nil {
		logrus.WithError(err).Fatal("bad logging flags")
	}
	if *timeline == "" {
		log.Fatal("-timeline is required")
	}
	prefabs.Dir = *prefabDir

	tl, err := LoadTimeline(*timeline)
	if err != nil {
		log.WithError(err).Fatal("load timeline")
	}
	opts, err := sim.DefaultOptions()
	if err != nil {
		log.WithError(err).Fatal("load tuning")
	}
	opts.Log = log
	s, err := sim.New(opts)
	if err != nil {
		log.WithError(err).Fatal("setup")
	}

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()

	var traceFn func(sim.Snapshot)
	if *trace > 0 {
		traceFn = func(snap sim.Snapshot) {
			if snap.Tick%uint64(*trace) == 0 {
				_ = enc.Encode(snap)
			}
		}
	}

	final, err := Run(s, tl, traceFn)
	if err != nil {
		log.WithError(err).Fatal("replay")
	}
	if err := enc.Encode(struct {
		Outcome string       `yaml:"outcome"`
		Final   sim.Snapshot `yaml:"final"`
	}{final.Outcome(), final}); err != nil {
		log.WithError(err).Fatal("encode")
	}
}
