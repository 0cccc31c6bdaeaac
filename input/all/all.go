// Package all imports all backends implemented by the input package.
package all

import (
	_ "github.com/noriah/ledspec/input/ffmpeg"
	_ "github.com/noriah/ledspec/input/parec"
	_ "github.com/noriah/ledspec/input/stdinput"
	_ "github.com/noriah/ledspec/input/synth"
	_ "github.com/noriah/ledspec/input/wavfile"
)
