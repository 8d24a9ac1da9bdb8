package config

import (
	"flag"
	"testing"

	"github.com/tomz197/duckhunter/internal/audio"
)

// TestGetEnvBool verifies parsing of boolean environment values
func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"ON", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		t.Setenv("DUCK_TEST_BOOL", tt.value)
		if got := GetEnvBool("DUCK_TEST_BOOL", tt.fallback); got != tt.want {
			t.Errorf("GetEnvBool(%q, %v) = %v, want %v", tt.value, tt.fallback, got, tt.want)
		}
	}
}

// TestGetEnvFallback verifies unset keys return the fallback
func TestGetEnvFallback(t *testing.T) {
	if got := GetEnv("DUCK_TEST_UNSET_KEY", "x"); got != "x" {
		t.Errorf("GetEnv fallback = %q, want x", got)
	}
	if got := GetEnvInt("DUCK_TEST_UNSET_KEY", 7); got != 7 {
		t.Errorf("GetEnvInt fallback = %d, want 7", got)
	}
	t.Setenv("DUCK_TEST_INT", "42")
	if got := GetEnvInt("DUCK_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
}

// TestLoadOptionsAndFlags verifies flags override environment defaults
func TestLoadOptionsAndFlags(t *testing.T) {
	t.Setenv("DUCK_DEBUG", "true")
	t.Setenv("DUCK_MODE", "Test Mode")
	opts := LoadOptions()
	if !opts.Debug || opts.Mode != "Test Mode" {
		t.Fatalf("LoadOptions = %+v", opts)
	}
	if !opts.Decals || !opts.DecalLimit {
		t.Errorf("decals should default on")
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	opts.RegisterFlags(fs)
	if err := fs.Parse([]string{"-debug=false", "-mode", "Aduckalypse Now"}); err != nil {
		t.Fatal(err)
	}
	if opts.Debug {
		t.Errorf("flag should disable debug")
	}
	if opts.Mode != "Aduckalypse Now" {
		t.Errorf("Mode = %q", opts.Mode)
	}
}

// TestSoundCategories verifies the master switch gates every category
func TestSoundCategories(t *testing.T) {
	o := Options{Sound: false, SoundAmbience: true, SoundShot: true, SoundDuck: true}
	if o.SoundAmbienceOn() || o.SoundShotOn() || o.SoundDuckOn() {
		t.Error("master sound off must silence all categories")
	}
	o.Sound = true
	o.SoundDuck = false
	if !o.SoundShotOn() || o.SoundDuckOn() {
		t.Error("category flags not honoured")
	}
}

// TestAudioSwitches verifies the master sound flag gates every category
func TestAudioSwitches(t *testing.T) {
	opts := Options{Sound: true, SoundShot: true, SoundDuck: false, SoundAmbience: true}
	if got := opts.AudioSwitches(); got != (audio.Switches{Shot: true, Ambience: true}) {
		t.Errorf("AudioSwitches = %+v", got)
	}
	opts.Sound = false
	if got := opts.AudioSwitches(); got != (audio.Switches{}) {
		t.Errorf("muted AudioSwitches = %+v", got)
	}
}
