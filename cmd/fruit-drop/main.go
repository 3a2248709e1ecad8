package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fruit-drop/audio"
	"github.com/lixenwraith/fruit-drop/catalog"
	"github.com/lixenwraith/fruit-drop/config"
	"github.com/lixenwraith/fruit-drop/core"
	"github.com/lixenwraith/fruit-drop/engine"
	"github.com/lixenwraith/fruit-drop/events"
	"github.com/lixenwraith/fruit-drop/parameter"
	"github.com/lixenwraith/fruit-drop/render"
	"github.com/lixenwraith/fruit-drop/status"
)

var (
	configFlag  = flag.String("config", "", "YAML config file")
	catalogFlag = flag.String("catalog", "", "YAML token catalog, overrides catalog_path")
	seedFlag    = flag.Uint64("seed", 0, "Spawner seed, 0 derives from clock")
	debugFlag   = flag.Bool("debug", false, "Write log to logs/fruit-drop.log")
	colorFlag   = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	muteFlag    = flag.Bool("mute", false, "Start with sound effects muted")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fruit-drop: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fruit-drop: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, cat); err != nil {
		fmt.Fprintf(os.Stderr, "fruit-drop: %v\n", err)
		os.Exit(1)
	}
}

// loadCatalog resolves flag over config over the embedded default
// The world must be wide enough for the largest tier
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	path := cfg.CatalogPath
	if *catalogFlag != "" {
		path = *catalogFlag
	}

	cat := catalog.Default()
	if path != "" {
		var err error
		if cat, err = catalog.Load(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.CheckFit(cat.Type(cat.MaxTier()).Size); err != nil {
		return nil, err
	}
	return cat, nil
}

func applyColorMode(mode string) {
	switch mode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}
}

func run(cfg *config.Config, cat *catalog.Catalog) error {
	applyColorMode(*colorFlag)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	defer screen.Fini()
	core.SetCrashTerminal(screen)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	// Audio failures are not fatal
	sound := audio.NewSoundManager(audio.LoadAudioConfig())
	if err := sound.Initialize(); err != nil {
		log.Printf("audio disabled: %v", err)
	}
	defer sound.Cleanup()
	if *muteFlag {
		sound.ToggleMute()
	}

	reg := status.NewRegistry()
	game := engine.NewGame(cfg, cat, nil, reg)

	renderer := render.NewRenderer(screen, cat)
	router := events.NewRouter(game.Events())
	router.Register(sound)
	router.Register(renderer)

	ctl := &controls{screen: screen, game: game, renderer: renderer, sound: sound}

	input := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			input <- ev
		}
	})

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	fps := reg.Floats.Get(status.KeyFPS)
	frames := 0
	fpsWindow := time.Now()

	for {
		select {
		case ev := <-input:
			if !ctl.handle(ev) {
				log.Printf("session %s ended, score %d", game.SessionID(), game.Score())
				return nil
			}

		case <-ticker.C:
			game.Tick()
			router.DispatchAll()
			renderer.SetMuted(sound.IsMuted())
			renderer.Draw(game)

			frames++
			if elapsed := time.Since(fpsWindow); elapsed >= time.Second {
				fps.Store(float64(frames) / elapsed.Seconds())
				frames = 0
				fpsWindow = time.Now()
			}
		}
	}
}

// controls maps terminal input onto the game
type controls struct {
	screen   tcell.Screen
	game     *engine.Game
	renderer *render.Renderer
	sound    *audio.SoundManager

	// Previous mouse state, a held button drops once
	buttons tcell.ButtonMask
}

// handle applies one terminal event, false requests exit
func (c *controls) handle(ev tcell.Event) bool {
	game := c.game
	switch ev := ev.(type) {
	case *tcell.EventResize:
		c.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			game.MoveDrop(-parameter.AimStep)
		case tcell.KeyRight:
			game.MoveDrop(parameter.AimStep)
		case tcell.KeyEnter:
			game.RequestDrop()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'h':
				game.MoveDrop(-parameter.AimStep)
			case 'l':
				game.MoveDrop(parameter.AimStep)
			case ' ':
				game.RequestDrop()
			case 'p', 'P':
				game.TogglePause()
			case 'r', 'R':
				game.Restart()
			case 'm', 'M':
				c.sound.ToggleMute()
			case 'd', 'D':
				c.renderer.ToggleDebug()
			}
		}

	case *tcell.EventMouse:
		l, ok := c.renderer.Layout()
		if !ok {
			return true
		}
		x, y := ev.Position()
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && c.buttons&tcell.Button1 == 0
		c.buttons = buttons
		if !l.Inside(x, y) {
			return true
		}
		game.SetDropX(l.WorldX(x))
		if pressed {
			game.RequestDropAt(l.WorldX(x))
		}
	}
	return true
}
