package engine

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DaemonConfig holds daemon-specific configuration.
type DaemonConfig struct {
	Interval time.Duration
	PIDFile  string // empty disables
	Log      *zap.Logger
}

// RunDaemon runs the control loop until SIGINT or SIGTERM. When the
// engine drives real hardware with apply enabled, the pwm is switched to
// manual control for the duration and handed back to the driver on exit.
func RunDaemon(ticker Ticker, cfg DaemonConfig) error {
	log := cfg.Log

	if cfg.PIDFile != "" {
		pid := fmt.Sprintf("%d\n", os.Getpid())
		if err := os.WriteFile(cfg.PIDFile, []byte(pid), 0o600); err != nil {
			return fmt.Errorf("write pid file: %w", err)
		}
		defer os.Remove(cfg.PIDFile)
	}

	eng := ticker.Base()
	if eng.apply && eng.fan != nil {
		if err := eng.fan.SetManual(true); err != nil {
			return fmt.Errorf("take pwm control: %w", err)
		}
		defer func() {
			if err := eng.fan.SetManual(false); err != nil {
				log.Warn("failed to hand pwm control back", zap.Error(err))
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	intervalTicker := time.NewTicker(cfg.Interval)
	defer intervalTicker.Stop()

	log.Info("daemon started",
		zap.Int("pid", os.Getpid()),
		zap.Duration("interval", cfg.Interval),
		zap.Bool("apply", eng.apply))

	prevRegime := ""
	for {
		select {
		case <-sigCh:
			log.Info("daemon shutting down")
			return nil
		case <-intervalTicker.C:
			ev := ticker.Tick()
			if ev == nil {
				continue
			}

			for _, msg := range ev.Sample.Errors {
				log.Warn("sensor error", zap.String("error", msg))
			}

			if regime := ev.Output.Dominant(); regime != prevRegime {
				log.Info("fan regime changed",
					zap.String("from", prevRegime),
					zap.String("to", regime),
					zap.Float64("duty", ev.Duty),
					zap.Float64("temperature", ev.Sample.Temperature),
					zap.Float64("power", ev.Sample.Power))
				prevRegime = regime
			}

			log.Debug("cycle",
				zap.Float64("temperature", ev.Sample.Temperature),
				zap.Float64("temp_rate", ev.Sample.TempRate),
				zap.Float64("power", ev.Sample.Power),
				zap.Float64("fan_duty", ev.Sample.FanDuty),
				zap.Float64("raw", ev.Raw),
				zap.Float64("duty", ev.Duty))
		}
	}
}
