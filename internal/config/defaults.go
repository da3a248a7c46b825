// SPDX-License-Identifier: EPL-2.0

package config

import "github.com/ik5/vorbenc/session"

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		SampleRate:    session.DefaultSampleRate,
		Quality:       session.DefaultQuality,
		CapacityBytes: session.DefaultCapacity,
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}
