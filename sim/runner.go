package sim

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"liftsim/config"
)

// StartRunner runs one simulation in its own goroutine, sleeping pace between
// ticks, and emits its events on the returned channel. The channel is closed
// when the run ends or is stopped. stop cancels the run; wait blocks until the
// goroutine has exited. Callers must either drain events or call stop.
func StartRunner(cfg config.Config, seed int64, pace time.Duration, log zerolog.Logger) (events <-chan Event, stop func(), wait func(), err error) {
	ch := make(chan Event, 256)
	stopCh := make(chan struct{})
	var stopOnce sync.Once
	stop = func() { stopOnce.Do(func() { close(stopCh) }) }
	var wg sync.WaitGroup
	wait = wg.Wait

	// only touched from the runner goroutine
	stopped := false
	publish := func(e Event) {
		if stopped {
			return
		}
		select {
		case ch <- e:
		case <-stopCh:
			stopped = true
		}
	}

	engine, err := NewSimulator(cfg, seed, WithObserver(publish), WithLogger(log))
	if err != nil {
		return nil, nil, nil, err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(ch)
		publish(InitEvent{Seed: seed, Config: cfg})
		for !engine.Done() && !stopped {
			engine.Step()
			if pace <= 0 || stopped {
				continue
			}
			select {
			case <-stopCh:
				stopped = true
			case <-time.After(pace):
			}
		}
		if stopped {
			log.Info().Int64("seed", seed).Int("tick", engine.Tick).Msg("run stopped")
			return
		}
		engine.Finish()
	}()
	return ch, stop, wait, nil
}
