package config

import (
	"testing"
)

// validBase returns a Config that passes Validate, for mutation in tests.
func validBase() Config {
	cfg := DefaultConfig()
	cfg.Images = []string{"a.jpg"}
	cfg.Musics = []string{"a.mp3"}
	cfg.Caption = "hello"
	cfg.Transform = TransformGrayscale
	return cfg
}

func TestValidate_Transformation(t *testing.T) {
	tests := []struct {
		name    string
		tr      Transformation
		wantErr bool
	}{
		{"grayscale is valid", TransformGrayscale, false},
		{"rotate is valid", TransformRotate, false},
		{"resize is valid", TransformResize, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "sepia", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBase()
			cfg.Transform = tt.tr
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiredInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no images", func(c *Config) { c.Images = nil }},
		{"no musics", func(c *Config) { c.Musics = nil }},
		{"empty caption", func(c *Config) { c.Caption = "  " }},
		{"zero duration", func(c *Config) { c.DurationSec = 0 }},
		{"negative duration", func(c *Config) { c.DurationSec = -3 }},
		{"empty output", func(c *Config) { c.OutputPath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBase()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestValidate_CheckOnlySkipsInputs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error in check mode: %v", err)
	}
}

func TestValidate_NormalizesBitrate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain number", "192", "192k", false},
		{"lowercase k", "192k", "192k", false},
		{"uppercase K", "192K", "192k", false},
		{"kbps suffix", "192kbps", "192k", false},
		{"empty", "", "", true},
		{"zero", "0k", "", true},
		{"garbage", "fast", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBase()
			cfg.AudioBitrate = tt.in
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.AudioBitrate != tt.want {
				t.Errorf("AudioBitrate = %q, want %q", cfg.AudioBitrate, tt.want)
			}
		})
	}
}

func TestPathListValue_Set(t *testing.T) {
	tests := []struct {
		name string
		sets []string
		want []string
	}{
		{"repeated flags", []string{"a.jpg", "b.jpg"}, []string{"a.jpg", "b.jpg"}},
		{"comma separated", []string{"a.jpg,b.jpg,c.jpg"}, []string{"a.jpg", "b.jpg", "c.jpg"}},
		{"mixed", []string{"a.jpg,b.jpg", "c.jpg"}, []string{"a.jpg", "b.jpg", "c.jpg"}},
		{"spaces trimmed", []string{" a.jpg , b.jpg "}, []string{"a.jpg", "b.jpg"}},
		{"empty parts dropped", []string{"a.jpg,,"}, []string{"a.jpg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			v := pathListValue{&got}
			for _, s := range tt.sets {
				if err := v.Set(s); err != nil {
					t.Fatalf("Set(%q): %v", s, err)
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestTransformationValue_Set(t *testing.T) {
	var tr Transformation
	v := transformationValue{&tr}

	if err := v.Set("GRAYSCALE"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if tr != TransformGrayscale {
		t.Errorf("got %q, want %q", tr, TransformGrayscale)
	}
	if err := v.Set("sepia"); err == nil {
		t.Error("Set(\"sepia\") should fail")
	}
}
