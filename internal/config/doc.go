// SPDX-License-Identifier: EPL-2.0

// Package config loads the vorbenc CLI settings from TOML.
//
// The file is looked up at the path given on the command line, then
// $VORBENC_CONFIG, then ~/.config/vorbenc/config.toml. A missing file is
// not an error; Default values apply. `vorbenc config init` writes a
// commented sample.
package config
