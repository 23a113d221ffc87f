// Package metrics exports combat counters for the /metrics endpoint.
package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/cue"
)

// Labels are bounded: event types, tiers, cue names and system type names
// are all fixed sets.
type Metrics struct {
	Registry *prometheus.Registry

	combatEvents   *prometheus.CounterVec
	damage         *prometheus.HistogramVec
	cues           *prometheus.CounterVec
	systemDuration *prometheus.HistogramVec
	ticks          prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		combatEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bossfight_combat_events_total",
			Help: "Combat events emitted during hit resolution",
		}, []string{"type", "tier"}),
		damage: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bossfight_damage_applied",
			Help:    "Damage applied per resolved hit",
			Buckets: []float64{1, 5, 10, 20, 40, 80},
		}, []string{"tier"}),
		cues: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bossfight_cues_total",
			Help: "Animation and audio cues triggered",
		}, []string{"cue"}),
		systemDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bossfight_system_duration_seconds",
			Help:    "Time spent in each system per tick",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}, []string{"system"}),
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "bossfight_ticks_total",
			Help: "Fixed simulation ticks run",
		}),
	}
}

// Attach subscribes to the combat emitter.
func (m *Metrics) Attach(emitter *combat.Emitter) {
	if m == nil {
		return
	}
	emitter.Subscribe(m.ObserveEvent)
}

func (m *Metrics) ObserveEvent(evt combat.Event) {
	if m == nil {
		return
	}
	m.combatEvents.WithLabelValues(string(evt.Type), evt.Tier.String()).Inc()
	if evt.Type == combat.EventDamageApplied {
		m.damage.WithLabelValues(evt.Tier.String()).Observe(evt.Damage)
	}
}

// Trigger counts cues; Metrics is a cue.Sink.
func (m *Metrics) Trigger(evt cue.Event) {
	if m == nil {
		return
	}
	m.cues.WithLabelValues(string(evt.Name)).Inc()
}

// ObserveSystem matches ecs.Scheduler.Observe.
func (m *Metrics) ObserveSystem(system string, took time.Duration) {
	if m == nil {
		return
	}
	m.systemDuration.WithLabelValues(system).Observe(took.Seconds())
}

func (m *Metrics) ObserveTick() {
	if m == nil {
		return
	}
	m.ticks.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Router serves /metrics and a liveness probe.
func (m *Metrics) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}
