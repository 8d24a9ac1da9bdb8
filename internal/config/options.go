package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/tomz197/duckhunter/internal/audio"
)

// Options holds the feature flags the engine reads every tick.
type Options struct {
	Debug      bool
	ShowFPS    bool
	Decals     bool
	DecalLimit bool

	Sound         bool
	SoundAmbience bool
	SoundShot     bool
	SoundDuck     bool

	Mode      string
	Player    string
	ScoreFile string
	LogFile   string
}

// DefaultMode is the mode name used when none is configured.
const DefaultMode = "Classic Quacks"

// LoadOptions reads Options from the environment.
func LoadOptions() Options {
	return Options{
		Debug:         GetEnvBool("DUCK_DEBUG", false),
		ShowFPS:       GetEnvBool("DUCK_FPS", false),
		Decals:        GetEnvBool("DUCK_DECALS", true),
		DecalLimit:    GetEnvBool("DUCK_DECAL_LIMIT", true),
		Sound:         GetEnvBool("DUCK_SOUND", true),
		SoundAmbience: GetEnvBool("DUCK_SOUND_AMBIENCE", true),
		SoundShot:     GetEnvBool("DUCK_SOUND_SHOT", true),
		SoundDuck:     GetEnvBool("DUCK_SOUND_DUCK", true),
		Mode:          GetEnv("DUCK_MODE", DefaultMode),
		Player:        GetEnv("DUCK_PLAYER", GetEnv("USER", "Player")),
		ScoreFile:     GetEnv("DUCK_SCORE_FILE", "scores.json"),
		LogFile:       GetEnv("DUCK_LOG_FILE", ""),
	}
}

// RegisterFlags binds command-line overrides for o onto fs.
// Call fs.Parse afterwards; environment values act as the defaults.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Mode, "mode", o.Mode, "game mode name")
	fs.StringVar(&o.Player, "name", o.Player, "player name")
	fs.StringVar(&o.ScoreFile, "scores", o.ScoreFile, "score file path")
	fs.BoolVar(&o.Debug, "debug", o.Debug, "enable debug keys and Test Mode")
	fs.BoolVar(&o.ShowFPS, "fps", o.ShowFPS, "show frames per second")
	fs.BoolVar(&o.Decals, "decals", o.Decals, "draw hit and miss decals")
	fs.BoolVar(&o.DecalLimit, "decal-limit", o.DecalLimit, "cap the number of decals")
	fs.BoolVar(&o.Sound, "sound", o.Sound, "enable audio")
}

// SoundAmbienceOn reports whether the ambience loop should play.
func (o Options) SoundAmbienceOn() bool { return o.Sound && o.SoundAmbience }

// SoundShotOn reports whether gun cues should play.
func (o Options) SoundShotOn() bool { return o.Sound && o.SoundShot }

// SoundDuckOn reports whether duck cues should play.
func (o Options) SoundDuckOn() bool { return o.Sound && o.SoundDuck }

// AudioSwitches maps the sound options onto dispatcher categories.
func (o Options) AudioSwitches() audio.Switches {
	return audio.Switches{
		Shot:     o.SoundShotOn(),
		Duck:     o.SoundDuckOn(),
		Ambience: o.SoundAmbienceOn(),
	}
}

// String renders the options as the lines shown on the options overlay.
func (o Options) String() string {
	var b strings.Builder
	line := func(name string, on bool) {
		state := "off"
		if on {
			state = "on"
		}
		fmt.Fprintf(&b, "%-14s %s\n", name, state)
	}
	line("debug", o.Debug)
	line("fps", o.ShowFPS)
	line("decals", o.Decals)
	line("decal limit", o.DecalLimit)
	line("sound", o.Sound)
	line("ambience", o.SoundAmbience)
	line("shot sounds", o.SoundShot)
	line("duck sounds", o.SoundDuck)
	return b.String()
}
