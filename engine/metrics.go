package engine

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fantop/fantop/model"
)

var metrics = struct {
	temperature prometheus.Gauge
	tempRate    prometheus.Gauge
	power       prometheus.Gauge
	fanDuty     prometheus.Gauge
	fanRPM      prometheus.Gauge
	rawSpeed    prometheus.Gauge
	dutyCommand prometheus.Gauge
	cycles      prometheus.Counter
	sensorErrs  prometheus.Counter
	cycleTime   prometheus.Histogram
	membership  *prometheus.GaugeVec
	ruleFiring  *prometheus.GaugeVec
}{
	temperature: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fantop_temperature_celsius",
		Help: "Hot-side temperature in degrees C",
	}),
	tempRate: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fantop_temp_rate_celsius_per_second",
		Help: "Temperature slope between the last two cycles",
	}),
	power: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fantop_tec_power_watts",
		Help: "TEC electrical power draw",
	}),
	fanDuty: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fantop_fan_duty_percent",
		Help: "Fan duty read back from the pwm attribute",
	}),
	fanRPM: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fantop_fan_rpm",
		Help: "Fan tach reading, 0 without a tach line",
	}),
	rawSpeed: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fantop_raw_speed_percent",
		Help: "Defuzzified fan speed before actuation remap",
	}),
	dutyCommand: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fantop_duty_command_percent",
		Help: "Duty command after actuation remap",
	}),
	cycles: promauto.NewCounter(prometheus.CounterOpts{
		Name: "fantop_cycles_total",
		Help: "The total number of controller cycles evaluated",
	}),
	sensorErrs: promauto.NewCounter(prometheus.CounterOpts{
		Name: "fantop_sensor_errors_total",
		Help: "The total number of per-cycle collector failures",
	}),
	cycleTime: promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fantop_cycle_duration_seconds",
		Help:    "Latency of one collect and evaluate cycle",
		Buckets: prometheus.ExponentialBuckets(1e-5, 2, 12),
	}),
	membership: promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fantop_membership_degree",
		Help: "Membership degree per linguistic variable label",
	}, []string{"variable", "label"}),
	ruleFiring: promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fantop_rule_strength",
		Help: "Firing strength per rule, 1-based",
	}, []string{"rule"}),
}

// ObserveEvaluation exports one controller cycle to the metrics registry.
func ObserveEvaluation(ev *model.Evaluation) {
	metrics.cycles.Inc()
	metrics.sensorErrs.Add(float64(len(ev.Sample.Errors)))
	metrics.temperature.Set(ev.Sample.Temperature)
	metrics.tempRate.Set(ev.Sample.TempRate)
	metrics.power.Set(ev.Sample.Power)
	metrics.fanDuty.Set(ev.Sample.FanDuty)
	metrics.fanRPM.Set(ev.Sample.FanRPM)
	metrics.rawSpeed.Set(ev.Raw)
	metrics.dutyCommand.Set(ev.Duty)

	for _, in := range ev.Inputs {
		for i, label := range in.Labels {
			metrics.membership.WithLabelValues(in.Name, label).Set(in.Degrees[i])
		}
	}
	for i, label := range ev.Output.Labels {
		metrics.membership.WithLabelValues(ev.Output.Name, label).Set(ev.Output.Degrees[i])
	}
	for _, r := range ev.Rules {
		metrics.ruleFiring.WithLabelValues(strconv.Itoa(r.Index + 1)).Set(r.Strength)
	}
}

// ServeMetrics exposes /metrics on addr. Blocks until the listener fails.
func ServeMetrics(addr string, log *zap.Logger) {
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, nil)
	log.Error("metrics server stopped", zap.Error(err))
}

// instrumentedTicker exports every evaluation the inner ticker produces.
type instrumentedTicker struct {
	inner Ticker
}

// NewInstrumentedTicker wraps a ticker with metrics export.
func NewInstrumentedTicker(inner Ticker) Ticker {
	return &instrumentedTicker{inner: inner}
}

func (t *instrumentedTicker) Tick() *model.Evaluation {
	t0 := time.Now()
	ev := t.inner.Tick()
	if ev != nil {
		metrics.cycleTime.Observe(time.Since(t0).Seconds())
		ObserveEvaluation(ev)
	}
	return ev
}

func (t *instrumentedTicker) Base() *Engine {
	return t.inner.Base()
}
