package main

import (
	"os"
	"time"

	"github.com/automoto/gaitkit/internal/log"
	"go.uber.org/zap"
)

// frameLoop runs the simulation a frame at a time, either flat out or paced
// by a ticker at the frame rate so a watched library can be edited while
// the avatar walks.
type frameLoop struct {
	rate     float64
	realtime bool
	stop     <-chan os.Signal
}

// run calls tick for frames 0..frames-1 and returns how many ran before a
// stop signal arrived.
func (l *frameLoop) run(frames int, tick func(frame int)) int {
	var ticks <-chan time.Time
	if l.realtime {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / l.rate))
		defer ticker.Stop()
		ticks = ticker.C
		log.Info("frame loop paced", zap.Float64("rate", l.rate))
	}

	for frame := 0; frame < frames; frame++ {
		select {
		case <-l.stop:
			return frame
		default:
		}
		if ticks != nil {
			select {
			case <-l.stop:
				return frame
			case <-ticks:
			}
		}
		tick(frame)
	}
	return frames
}
