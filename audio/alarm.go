package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	beepFreq    = 880.0 // A5
	beepLength  = 150 * time.Millisecond
	beepGap     = 100 * time.Millisecond
	beepAttack  = 5 * time.Millisecond
	beepRelease = 40 * time.Millisecond
	beepCount   = 3
	beepVolume  = 0.4
)

// AlarmDuration is how long the countdown alarm plays
const AlarmDuration = beepCount*beepLength + (beepCount-1)*beepGap

// NewAlarmPattern returns the countdown alarm: beepCount short square-wave beeps
func NewAlarmPattern(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, beepCount*2-1)
	for i := 0; i < beepCount; i++ {
		if i > 0 {
			parts = append(parts, beep.Silence(rate.N(beepGap)))
		}
		osc := NewOscillator(beepFreq, beepLength, WaveSquare, rate)
		parts = append(parts, NewEnvelope(osc, beepLength, beepAttack, beepRelease, rate))
	}
	return newVolume(beep.Seq(parts...), beepVolume)
}

// Alarm plays the countdown alarm through the system speaker.
// Every method is safe to call when the speaker could not be initialised.
type Alarm struct {
	mu          sync.Mutex
	initialized bool
}

// NewAlarm creates an alarm; call Initialize before Play
func NewAlarm() *Alarm {
	return &Alarm{}
}

// Initialize opens the speaker. A failure leaves the alarm silent.
func (a *Alarm) Initialize() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	a.initialized = true
	return nil
}

// Play starts the alarm and returns a channel closed when it has finished.
// Without an initialised speaker the channel is already closed.
func (a *Alarm) Play() <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()

	done := make(chan struct{})
	if !a.initialized {
		close(done)
		return done
	}

	speaker.Play(beep.Seq(NewAlarmPattern(sampleRate), beep.Callback(func() {
		close(done)
	})))
	return done
}

// Close stops playback and releases the speaker
func (a *Alarm) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	a.initialized = false
}
