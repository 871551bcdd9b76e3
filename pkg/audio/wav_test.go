package audio

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWAV assembles a minimal RIFF/WAVE file around raw PCM data.
func buildWAV(rate, channels, bits int, pcm []byte) []byte {
	blockAlign := channels * bits / 8
	byteRate := rate * blockAlign

	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(36+len(pcm)))
	out = append(out, []byte("WAVE")...)

	out = append(out, []byte("fmt ")...)
	out = binary.LittleEndian.AppendUint32(out, 16)
	out = binary.LittleEndian.AppendUint16(out, 1) // PCM
	out = binary.LittleEndian.AppendUint16(out, uint16(channels))
	out = binary.LittleEndian.AppendUint32(out, uint32(rate))
	out = binary.LittleEndian.AppendUint32(out, uint32(byteRate))
	out = binary.LittleEndian.AppendUint16(out, uint16(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, uint16(bits))

	out = append(out, []byte("data")...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(pcm)))
	out = append(out, pcm...)

	return out
}

func TestParseWAVRoundTrip(t *testing.T) {
	pcm := synthesize([]toneSegment{{frequencyHz: 440, duration: 50 * time.Millisecond, volume: 0.3}})

	format, data, err := parseWAV(buildWAV(sampleRate, 1, 16, pcm))
	require.NoError(t, err)

	assert.Equal(t, sampleRate, format.SampleRate)
	assert.Equal(t, 1, format.Channels)
	assert.Equal(t, 16, format.BitDepth)
	assert.Equal(t, pcm, data)
}

func TestParseWAVSkipsUnknownChunks(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}
	wav := buildWAV(22050, 2, 16, pcm)

	// Splice a LIST chunk between fmt and data
	list := append([]byte("LIST"), 0, 0, 0, 0)
	withList := append([]byte{}, wav[:36]...)
	withList = append(withList, list...)
	withList = append(withList, wav[36:]...)

	format, data, err := parseWAV(withList)
	require.NoError(t, err)
	assert.Equal(t, 22050, format.SampleRate)
	assert.Equal(t, pcm, data)
}

func TestParseWAVRejectsGarbage(t *testing.T) {
	_, _, err := parseWAV([]byte("<!DOCTYPE html>this is not audio"))
	assert.Error(t, err)
}

func TestParseWAVRejectsTruncatedData(t *testing.T) {
	wav := buildWAV(44100, 1, 16, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	_, _, err := parseWAV(wav[:len(wav)-4])
	assert.Error(t, err)
}

func TestParseWAVRejectsMissingData(t *testing.T) {
	wav := buildWAV(44100, 1, 16, nil)
	_, _, err := parseWAV(wav)
	assert.Error(t, err)
}

func TestSynthesizedSirens(t *testing.T) {
	for name, pcm := range map[string][]byte{
		"medical": medicalSirenPCM(),
		"fire":    fireSirenPCM(),
	} {
		assert.NotEmpty(t, pcm, name)
		assert.Zero(t, len(pcm)%2, "%s must be whole 16-bit samples", name)

		// The siren must actually contain signal, not silence
		var peak int16
		for i := 0; i+1 < len(pcm); i += 2 {
			s := int16(binary.LittleEndian.Uint16(pcm[i:]))
			if s > peak {
				peak = s
			}
		}
		assert.Greater(t, peak, int16(20000), "%s should be near full scale", name)
	}
}

func TestSynthesizeSilence(t *testing.T) {
	pcm := synthesize([]toneSegment{{frequencyHz: 0, duration: 10 * time.Millisecond}})
	for _, b := range pcm {
		assert.Zero(t, b)
	}
}
