package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// Built-in sirens, synthesized so the binary ships without sound assets.
// One cycle of PCM per tone; the playback loop repeats it indefinitely.

type toneSegment struct {
	frequencyHz float64
	duration    time.Duration
	volume      float64
}

// medicalSirenPCM is an urgent pulsed beep: high pips with short gaps.
func medicalSirenPCM() []byte {
	return synthesize([]toneSegment{
		{frequencyHz: 1050, duration: 220 * time.Millisecond, volume: 0.95},
		{frequencyHz: 0, duration: 120 * time.Millisecond},
		{frequencyHz: 1050, duration: 220 * time.Millisecond, volume: 0.95},
		{frequencyHz: 0, duration: 360 * time.Millisecond},
	})
}

// fireSirenPCM is a classic two-tone hi-lo sweep.
func fireSirenPCM() []byte {
	return synthesize([]toneSegment{
		{frequencyHz: 900, duration: 480 * time.Millisecond, volume: 0.95},
		{frequencyHz: 650, duration: 480 * time.Millisecond, volume: 0.95},
	})
}

// synthesize renders the segments as 16-bit little-endian mono PCM at the
// player sample rate. A zero frequency renders silence.
func synthesize(segments []toneSegment) []byte {
	var total int
	for _, seg := range segments {
		total += int(float64(sampleRate) * seg.duration.Seconds())
	}

	out := make([]byte, 0, total*2)
	for _, seg := range segments {
		n := int(float64(sampleRate) * seg.duration.Seconds())
		for i := 0; i < n; i++ {
			var sample float64
			if seg.frequencyHz > 0 {
				t := float64(i) / float64(sampleRate)
				sample = seg.volume * math.Sin(2*math.Pi*seg.frequencyHz*t)

				// Short attack/decay ramps to avoid clicks at segment edges
				const ramp = 200
				if i < ramp {
					sample *= float64(i) / ramp
				} else if n-i < ramp {
					sample *= float64(n-i) / ramp
				}
			}
			out = binary.LittleEndian.AppendUint16(out, uint16(int16(sample*math.MaxInt16)))
		}
	}
	return out
}
