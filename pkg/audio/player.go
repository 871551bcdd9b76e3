package audio

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// All tones share one playback format. Custom WAV files that do not match
// are rejected at load time and replaced by the built-in siren.
const (
	sampleRate   = 44100
	channelCount = 1
)

// Global audio context singleton. oto contexts cannot be torn down, so the
// context outlives any Player instance.
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

func initAudioContext() {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Println("Audio context initialized successfully")
	})
}

// tone is one loadable alarm sound.
type tone struct {
	id     string
	pcm    []byte
	loaded bool
	custom bool // true when the PCM came from a user-supplied WAV file
}

// playback is one running alarm loop with cancellation support.
type playback struct {
	toneID   string
	stopChan chan struct{}
	player   *oto.Player
	stopped  bool
	mu       sync.Mutex
}

// Player owns the alarm tones and enforces that at most one of them is
// sounding at any time. Construct one per app, Initialize it once, and
// Release it on shutdown.
type Player struct {
	mu          sync.Mutex
	tones       map[string]*tone
	current     *playback
	initialized bool
	released    bool

	// startPlayback dispatches a playback loop for a tone. Swapped out in
	// tests where no audio hardware exists.
	startPlayback func(t *tone) *playback
}

// NewPlayer creates an empty Player. Call Initialize before Play.
func NewPlayer() *Player {
	p := &Player{
		tones: make(map[string]*tone),
	}
	p.startPlayback = p.startOtoPlayback
	return p
}

// Initialize loads the medical and fire tones. A user-supplied
// "<tone>.wav" in storageDir overrides the built-in siren; any load or
// format problem falls back to the built-in PCM. Idempotent, never fails
// the caller: a tone that cannot be prepared simply stays unloaded.
func (p *Player) Initialize(storageDir string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return
	}
	p.initialized = true
	p.released = false

	for id, builtin := range map[string]func() []byte{
		"medical": medicalSirenPCM,
		"fire":    fireSirenPCM,
	} {
		t := &tone{id: id}

		if pcm, ok := loadCustomTone(storageDir, id); ok {
			t.pcm = pcm
			t.custom = true
			t.loaded = true
			log.Printf("Loaded custom tone %q from %s", id, storageDir)
		} else if pcm := builtin(); len(pcm) > 0 {
			t.pcm = pcm
			t.loaded = true
		} else {
			log.Printf("No PCM available for tone %q, it will stay silent", id)
		}

		p.tones[id] = t
	}
}

// loadCustomTone reads storageDir/<id>.wav and validates it against the
// playback format. Returns false when the file is absent or unusable.
func loadCustomTone(storageDir, id string) ([]byte, bool) {
	if storageDir == "" {
		return nil, false
	}

	path := filepath.Join(storageDir, id+".wav")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read custom tone %s: %v", path, err)
		}
		return nil, false
	}

	format, pcm, err := parseWAV(data)
	if err != nil {
		log.Printf("Failed to parse custom tone %s: %v", path, err)
		return nil, false
	}
	if format.SampleRate != sampleRate || format.Channels != channelCount || format.BitDepth != 16 {
		log.Printf("Custom tone %s has unsupported format %d Hz / %d ch / %d bit, using built-in siren",
			path, format.SampleRate, format.Channels, format.BitDepth)
		return nil, false
	}

	return pcm, true
}

// Play starts looping the named tone at full volume, stopping whichever
// tone was sounding before. The return value reports whether a playback
// attempt was dispatched, not whether audio is audible.
func (p *Player) Play(toneID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		log.Printf("Play(%q) called after Release, ignoring", toneID)
		return false
	}

	t, ok := p.tones[toneID]
	if !ok || !t.loaded {
		log.Printf("Tone %q is not loaded, nothing to play", toneID)
		return false
	}

	// At most one tone sounds at a time
	p.stopCurrentLocked()

	pb := p.startPlayback(t)
	if pb == nil {
		return false
	}
	p.current = pb
	return true
}

// StopAll stops any sounding tone. Safe to call when nothing is playing.
func (p *Player) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopCurrentLocked()
}

func (p *Player) stopCurrentLocked() {
	if p.current != nil {
		p.current.stop()
		p.current = nil
	}
}

// IsPlaying reports whether any tone is currently sounding.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil && !p.current.isStopped()
}

// PlayingTone returns the id of the sounding tone, or "".
func (p *Player) PlayingTone() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil || p.current.isStopped() {
		return ""
	}
	return p.current.toneID
}

// Release stops playback and drops the loaded tones. The global audio
// context stays alive since oto offers no teardown; a released Player can
// be re-initialized.
func (p *Player) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopCurrentLocked()
	p.tones = make(map[string]*tone)
	p.initialized = false
	p.released = true
}

// startOtoPlayback spins up the looping playback goroutine for a tone.
// Returns nil when the audio context could not be brought up.
func (p *Player) startOtoPlayback(t *tone) *playback {
	initAudioContext()

	if !audioCtxReady || globalAudioCtx == nil {
		log.Printf("Audio context not ready, tone %q will not sound", t.id)
		return nil
	}

	pb := &playback{
		toneID:   t.id,
		stopChan: make(chan struct{}),
	}

	// Play in a goroutine so the caller never blocks on audio
	go pb.loop(t.pcm)

	return pb
}

func (pb *playback) loop(pcm []byte) {
	// Loop the alarm sound until stopped
	for {
		// Create a new player for each loop iteration
		player := globalAudioCtx.NewPlayer(bytes.NewReader(pcm))
		player.SetVolume(1.0)

		pb.mu.Lock()
		if pb.stopped {
			pb.mu.Unlock()
			player.Close()
			return
		}
		pb.player = player
		pb.mu.Unlock()

		// Play starts playing the sound and returns without waiting
		player.Play()

		// Wait for the sound to finish playing or stop signal
		for player.IsPlaying() {
			select {
			case <-pb.stopChan:
				player.Pause()
				player.Close()
				log.Println("Audio player closed")
				return
			case <-time.After(10 * time.Millisecond):
				// Continue checking
			}
		}

		// Close the player before creating a new one
		if err := player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}

		// Check if stop was requested between loops
		select {
		case <-pb.stopChan:
			return
		default:
			// Continue looping
		}
	}
}

func (pb *playback) stop() {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if !pb.stopped {
		pb.stopped = true
		close(pb.stopChan)

		if pb.player != nil {
			pb.player.Pause()
		}

		log.Println("Audio playback stopped")
	}
}

func (pb *playback) isStopped() bool {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.stopped
}
