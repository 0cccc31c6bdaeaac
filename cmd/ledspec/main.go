package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/noriah/ledspec"
	"github.com/noriah/ledspec/dsp/window"
	"github.com/noriah/ledspec/graphic"
	"github.com/noriah/ledspec/input"
	"github.com/noriah/ledspec/processor"

	_ "github.com/noriah/ledspec/input/all"

	"github.com/integrii/flaggy"
)

// AppName is the app name
const AppName = "ledspec"

// AppDesc is the app description
const AppDesc = "Adaptive spectrum display for LED bar matrices"

// AppSite is the app website
const AppSite = "https://github.com/noriah/ledspec"

var version = "unknown"

func main() {
	log.SetFlags(0)

	cfg := newZeroConfig()

	if doFlags(&cfg) {
		return
	}

	chk(cfg.validate(), "invalid config")

	windower, err := window.ByName(cfg.window)
	chk(err, "invalid window")

	ledCfg := ledspec.Config{
		Backend:    cfg.backend,
		Device:     cfg.device,
		SampleRate: cfg.sampleRate,
		SampleSize: cfg.sampleSize,
		FrameRate:  cfg.frameRate,
		Frames:     cfg.frames,
		Windower:   windower,
		Engine:     cfg.engineConfig(),
	}

	if cfg.debug {
		ledCfg.Logger = log.New(os.Stderr, "", log.Lmicroseconds)
	}

	setOutput(&ledCfg, &cfg)

	// Root Context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	chk(ledspec.Run(&ledCfg, ctx), "failed to run ledspec")
}

func setOutput(ledCfg *ledspec.Config, cfg *config) {
	var output processor.Output

	switch cfg.output {
	case OutputASCII:
		output = graphic.NewASCII(os.Stdout, cfg.displayLines(), cfg.showHex)

	case OutputRaw:
		output = graphic.NewRaw(os.Stdout)

	default:
		display := graphic.NewTerminal(cfg.displayLines())
		display.SetStyles(cfg.styles)

		ledCfg.SetupFunc = display.Init
		ledCfg.StartFunc = func(ctx context.Context) (context.Context, error) {
			return display.Start(ctx), nil
		}
		ledCfg.CleanupFunc = func() error {
			display.Stop()
			return display.Close()
		}

		output = display
	}

	ledCfg.Output = output
}

func doFlags(cfg *config) bool {

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	listBackendsCmd := flaggy.Subcommand{
		Name:                 "list-backends",
		ShortName:            "lb",
		Description:          "list all supported backends",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listBackendsCmd, 1)

	listDevicesCmd := flaggy.Subcommand{
		Name:                 "list-devices",
		ShortName:            "ld",
		Description:          "list all devices for a backend",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listDevicesCmd, 1)

	parser.String(&cfg.backend, "b", "backend", "backend name")
	parser.String(&cfg.device, "d", "device", "device name")
	parser.Float64(&cfg.sampleRate, "r", "rate", "sample rate")
	parser.Int(&cfg.sampleSize, "n", "samples", "sample size")
	parser.Int(&cfg.frameRate, "f", "fps", "frame rate (0 follows the sample rate, -1 unpaced)")
	parser.Int(&cfg.frames, "fc", "frames", "stop after this many frames (0 runs forever)")

	parser.Int(&cfg.width, "W", "width", "display width in leds")
	parser.Int(&cfg.height, "H", "height", "display height in leds")
	parser.Int(&cfg.bars, "nb", "bars", "number of bars (0 fits the display)")
	parser.Int(&cfg.lines, "nl", "lines", "rows per bar (0 uses the height)")
	parser.Int(&cfg.barSize, "bw", "bar", "bar width [1, +Inf)")
	parser.Int(&cfg.spaceSize, "sw", "space", "space width [0, +Inf)")
	parser.Int(&cfg.skip, "sk", "skip", "low frequency bins to skip")

	parser.Int(&cfg.windowSize, "ws", "scale-window", "scale tracker buckets")
	parser.Int(&cfg.groupSize, "gs", "scale-group", "frames per scale tracker bucket")
	parser.Float64(&cfg.floor, "fl", "floor", "lowest peak the scale follows")

	parser.String(&cfg.axis, "ax", "axis", "frequency axis (log or linear)")
	parser.Int(&cfg.linearBars, "li", "linear-bars", "bars mapped one bin each on a log axis")
	parser.Float64(&cfg.threshold, "th", "threshold", "fraction of bars mapped one bin each [0, 1]")
	parser.Float64(&cfg.base, "lg", "base", "log axis base (0 computes it)")

	parser.String(&cfg.binMethod, "bm", "bin-method", "band reduction (max, avg or sum)")
	parser.String(&cfg.window, "wn", "window", fmt.Sprintf("window function %v", window.Names()))
	parser.Bool(&cfg.noFall, "nf", "no-fall", "drop bars instantly instead of one row per frame")

	parser.String(&cfg.output, "o", "output", "output (term, ascii or raw)")
	parser.Bool(&cfg.showHex, "x", "hex", "print column values with ascii output")
	parser.Bool(&cfg.debug, "dbg", "debug", "print sampling diagnostics to stderr")

	fg, bg, off := graphic.DefaultStyles().AsUInt16s()
	parser.UInt16(&fg, "fg", "foreground",
		"lit led color within the 256-color range [0, 255] with attributes")
	parser.UInt16(&bg, "bg", "background",
		"background color within the 256-color range [0, 255] with attributes")
	parser.UInt16(&off, "of", "off",
		"unlit led color within the 256-color range [0, 255] with attributes")

	chk(parser.Parse(), "failed to parse arguments")

	// Manually set the styles.
	cfg.styles = graphic.StylesFromUInt16(fg, bg, off)

	if cfg.backend == "" {
		cfg.backend = input.DefaultBackend()
	}

	switch {
	case listBackendsCmd.Used:
		for _, backend := range input.Backends {
			fmt.Printf("- %s\n", backend.Name)
		}

		return true

	case listDevicesCmd.Used:
		backend, err := input.InitBackend(cfg.backend)
		chk(err, "failed to init backend")

		devices, err := backend.Devices()
		chk(err, "failed to get devices")

		// We don't really need the default device to be indicated.
		defaultDevice, _ := backend.DefaultDevice()

		fmt.Printf("all devices for %q backend. '*' marks default\n", cfg.backend)

		for idx := range devices {
			star := ' '
			if defaultDevice != nil && devices[idx].String() == defaultDevice.String() {
				star = '*'
			}

			fmt.Printf("- %v %c\n", devices[idx], star)
		}

		return true
	}

	return false
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
