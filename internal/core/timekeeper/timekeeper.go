package timekeeper

import (
	"sync"
	"time"

	"focuslog/internal/core/model"
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Now          func() time.Time
}

// TimeKeeper is a state machine that alternates work and break intervals.
// Every state change is published with both the previous and the new state.
type TimeKeeper struct {
	mu              sync.Mutex
	config          model.TimerConfig
	options         Config
	state           State
	previousState   State
	remaining       time.Duration
	completedRounds int
	events          []subscriber
	stopCh          chan struct{}
	running         bool
}

// New creates a TimeKeeper with the provided configuration.
func New(config model.TimerConfig, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	return &TimeKeeper{
		config:        normalizeConfig(config),
		options:       options,
		state:         StateIdle,
		previousState: StateIdle,
	}
}

type subscriber struct {
	ch           chan Event
	stateChanges bool
}

// Subscribe registers a new observer channel. Events that do not fit in the
// buffer are dropped.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	return keeper.subscribe(buffer, false)
}

// SubscribeStateChanges registers an observer that receives only state changes,
// each one delivered even when the buffer is full. The timer waits for the
// reader, so the channel must be drained until Close closes it.
func (keeper *TimeKeeper) SubscribeStateChanges(buffer int) <-chan Event {
	return keeper.subscribe(buffer, true)
}

func (keeper *TimeKeeper) subscribe(buffer int, stateChanges bool) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, subscriber{ch: ch, stateChanges: stateChanges})
	keeper.mu.Unlock()
	return ch
}

// State returns the current mode.
func (keeper *TimeKeeper) State() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// Start enters the first work interval and launches the ticking loop.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	keeper.stopCh = make(chan struct{})
	keeper.completedRounds = 0
	keeper.enterLocked(StateWork)
	stopCh := keeper.stopCh
	keeper.mu.Unlock()

	go keeper.run(stopCh)
}

// Stop returns to idle and terminates the ticking loop. Observers stay subscribed.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.stopLocked()
}

// Close stops the timer and closes every observer channel.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	keeper.stopLocked()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, sub := range events {
		close(sub.ch)
	}
}

func (keeper *TimeKeeper) stopLocked() {
	if !keeper.running {
		return
	}
	keeper.enterLocked(StateIdle)
	close(keeper.stopCh)
	keeper.running = false
}

// Pause freezes the timer.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running || keeper.state == StatePaused {
		return
	}
	keeper.previousState = keeper.state
	keeper.transitionLocked(StatePaused)
}

// Resume unfreezes the timer and returns to the mode that was paused.
func (keeper *TimeKeeper) Resume() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state != StatePaused {
		return
	}
	keeper.transitionLocked(keeper.previousState)
}

// SkipBreak ends the current break and returns to work state.
func (keeper *TimeKeeper) SkipBreak() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state != StateShortBreak && keeper.state != StateLongBreak {
		return
	}
	keeper.enterLocked(StateWork)
}

// ForceBreak ends the current work interval with a short or long break.
func (keeper *TimeKeeper) ForceBreak(state State) {
	if state != StateShortBreak && state != StateLongBreak {
		return
	}

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running || keeper.state != StateWork {
		return
	}
	keeper.completedRounds++
	keeper.enterLocked(state)
}

func (keeper *TimeKeeper) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			keeper.tick(keeper.options.TickInterval)
		}
	}
}

func (keeper *TimeKeeper) tick(delta time.Duration) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running || keeper.state == StatePaused || keeper.state == StateIdle {
		return
	}

	keeper.remaining -= delta
	if keeper.remaining > 0 {
		keeper.emitLocked(Event{
			Type:      EventProgress,
			State:     keeper.state,
			Remaining: keeper.remaining,
			Progress:  keeper.progressLocked(),
			At:        keeper.options.Now(),
		})
		return
	}

	if keeper.state != StateWork {
		keeper.enterLocked(StateWork)
		return
	}

	keeper.completedRounds++
	if keeper.config.LongBreakEvery > 0 && keeper.completedRounds%keeper.config.LongBreakEvery == 0 {
		keeper.enterLocked(StateLongBreak)
		return
	}
	keeper.enterLocked(StateShortBreak)
}

// enterLocked starts a fresh interval in state.
func (keeper *TimeKeeper) enterLocked(state State) {
	keeper.remaining = keeper.durationLocked(state)
	keeper.transitionLocked(state)
}

func (keeper *TimeKeeper) transitionLocked(state State) {
	from := keeper.state
	keeper.state = state
	keeper.emitLocked(Event{
		Type:      EventStateChange,
		From:      from,
		State:     state,
		Remaining: keeper.remaining,
		At:        keeper.options.Now(),
	})
}

func (keeper *TimeKeeper) durationLocked(state State) time.Duration {
	switch state {
	case StateWork:
		return keeper.config.Work
	case StateShortBreak:
		return keeper.config.ShortBreak
	case StateLongBreak:
		return keeper.config.LongBreak
	}
	return 0
}

func (keeper *TimeKeeper) progressLocked() float64 {
	total := keeper.durationLocked(keeper.state)
	if total <= 0 {
		return 1
	}
	progress := float64(total-keeper.remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, sub := range keeper.events {
		if sub.stateChanges {
			if event.Type == EventStateChange {
				sub.ch <- event
			}
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}

func normalizeConfig(config model.TimerConfig) model.TimerConfig {
	defaults := model.DefaultTimerConfig()
	if config.Work <= 0 {
		config.Work = defaults.Work
	}
	if config.ShortBreak <= 0 {
		config.ShortBreak = defaults.ShortBreak
	}
	if config.LongBreak <= 0 {
		config.LongBreak = defaults.LongBreak
	}
	if config.LongBreakEvery < 0 {
		config.LongBreakEvery = 0
	}
	return config
}
