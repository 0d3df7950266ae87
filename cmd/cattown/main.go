package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"chosenoffset.com/cattown/internal/assets"
	"chosenoffset.com/cattown/internal/audio"
	"chosenoffset.com/cattown/internal/game"
	ebitenrender "chosenoffset.com/cattown/internal/render/ebiten"
	"chosenoffset.com/cattown/internal/simulation"
)

func main() {
	configPath := flag.String("config", "cattown.yaml", "simulation config overlay (YAML)")
	seed := flag.Int64("seed", 0, "world seed; 0 uses the config seed, then the clock")
	assetRoot := flag.String("assets", ".", "directory containing graphics/")
	musicDir := flag.String("music", "music", "directory of mp3 tracks")
	saveDir := flag.String("saves", ".", "directory for save files")
	screenWidth := flag.Int("width", 1280, "window width")
	screenHeight := flag.Int("height", 800, "window height")
	flag.Parse()

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed == 0 {
		*seed = cfg.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("World seed: %d", *seed)
	rng := rand.New(rand.NewSource(*seed))

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := assets.Load(ctx, loader, *assetRoot, assets.Manifest())

	var music *audio.Jukebox
	tracks, err := audio.ScanTracks(*musicDir)
	if err != nil {
		log.Printf("Warning: No music: %v", err)
	} else {
		log.Printf("Found %d tracks", len(tracks))
		music = audio.NewJukebox(tracks, audio.NewOpener(eaudio.NewContext(audio.SampleRate)))
		defer music.Close()
	}

	manager := game.NewManager(renderer, inputMgr, store, music, cfg, rng, *screenWidth, *screenHeight)
	manager.SaveDir = *saveDir

	engine.SetWindowSize(*screenWidth, *screenHeight)
	engine.SetWindowTitle("Clara's Cat Town")
	engine.SetWindowResizable(true)

	log.Println("Starting game...")
	if err := engine.RunGame(manager); err != nil {
		log.Fatal(err)
	}
}
