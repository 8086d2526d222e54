package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"

	"github.com/lixenwraith/winhop/audio"
	"github.com/lixenwraith/winhop/config"
	"github.com/lixenwraith/winhop/core"
	"github.com/lixenwraith/winhop/engine"
	"github.com/lixenwraith/winhop/parameter"
)

var (
	configFlag = flag.String("config", "", "Path to a YAML config file")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/winhop.log and show the metrics panel")
	muteFlag   = flag.Bool("mute", false, "Start without audio")
	seedFlag   = flag.Uint64("seed", 0, "RNG seed, 0 derives one from the clock")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "winhop: %v\n", err)
		os.Exit(2)
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	core.SetCrashRestore(screen.Fini)
	screen.HideCursor()

	var sink audio.Sink
	if cfg.Audio.Enabled {
		speaker := audio.NewSpeakerSink()
		if err := speaker.Init(beep.SampleRate(parameter.AudioSampleRate), parameter.AudioBufferLength); err != nil {
			log.Printf("audio init failed, continuing without audio: %v", err)
		} else {
			sink = speaker
		}
	}

	a := newApp(cfg, screen, sink, engine.NewMonotonicTimeProvider())
	defer a.close()

	events := make(chan tcell.Event, parameter.EventChannelSize)
	// Input polling runs on its own goroutine, PollEvent returns nil once the screen is finalized
	core.Go(func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	log.Printf("winhop started, seed %d", cfg.Seed)
	a.run(events)
	log.Printf("winhop exiting, score %d", a.gc.Score.Value())
}
