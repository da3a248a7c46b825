// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"48k default quality", Config{SampleRate: 48000, Channels: 2, Quality: 0.4}, false},
		{"lowest quality", Config{SampleRate: 44100, Channels: 2, Quality: MinQuality}, false},
		{"highest quality", Config{SampleRate: 8000, Channels: 2, Quality: MaxQuality}, false},
		{"zero rate", Config{SampleRate: 0, Channels: 2, Quality: 0.4}, true},
		{"negative rate", Config{SampleRate: -48000, Channels: 2, Quality: 0.4}, true},
		{"mono", Config{SampleRate: 48000, Channels: 1, Quality: 0.4}, true},
		{"quality too high", Config{SampleRate: 48000, Channels: 2, Quality: 1.01}, true},
		{"quality too low", Config{SampleRate: 48000, Channels: 2, Quality: -0.2}, true},
		{"valid tags", Config{SampleRate: 48000, Channels: 2, Quality: 0.4, Tags: []Tag{{"ARTIST", "Ünïcode"}}}, false},
		{"tag key with equals", Config{SampleRate: 48000, Channels: 2, Quality: 0.4, Tags: []Tag{{"A=B", "x"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInit) {
				t.Errorf("Validate() error = %v, want ErrInit", err)
			}
		})
	}
}

func TestTag_String(t *testing.T) {
	t.Parallel()

	if got := (Tag{Key: "ENCODER", Value: "vorbenc"}).String(); got != "ENCODER=vorbenc" {
		t.Errorf("Tag.String() = %q", got)
	}
}

func TestTag_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tag     Tag
		wantErr bool
	}{
		{"plain", Tag{Key: "TITLE", Value: "Test tone"}, false},
		{"lower case and space", Tag{Key: "replay gain", Value: "-3 dB"}, false},
		{"utf-8 value", Tag{Key: "ARTIST", Value: "Björk"}, false},
		{"empty value", Tag{Key: "COMMENT"}, false},
		{"empty key", Tag{Value: "x"}, true},
		{"equals in key", Tag{Key: "A=B", Value: "x"}, true},
		{"non-ascii key", Tag{Key: "KÜNSTLER", Value: "x"}, true},
		{"tilde key", Tag{Key: "A~", Value: "x"}, true},
		{"control in key", Tag{Key: "A\tB", Value: "x"}, true},
		{"nul in value", Tag{Key: "TITLE", Value: "a\x00b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.tag.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTag) {
				t.Errorf("Validate() error = %v, want ErrInvalidTag", err)
			}
		})
	}
}
