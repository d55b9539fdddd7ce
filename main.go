package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/leonelquinteros/gotext"

	"encounterhud/pkg/engine/watch"
	"encounterhud/pkg/hud/paths"
	"encounterhud/pkg/hud/renderer"
	overlay "encounterhud/pkg/hud/renderer/ebiten"
	"encounterhud/pkg/hud/renderer/tui"
	"encounterhud/pkg/hud/session"
)

func initGotext(base string) {
	lang := os.Getenv("LANG")
	if lang == "" {
		lang = "en_US"
	}
	gotext.Configure(filepath.Join(base, "locales"), lang, "default")
}

func main() {
	dir := flag.String("dir", "", "artifact directory (defaults to the executable's directory)")
	debug := flag.Bool("debug", false, "verbose logging")
	headless := flag.Bool("headless", false, "render to the terminal instead of a window")
	notify := flag.Bool("notify", false, "use filesystem notifications instead of mtime polling")
	flag.Parse()

	if !*debug {
		log.SetFlags(0)
	}

	p, err := paths.Resolve(*dir)
	if err != nil {
		log.Fatalf("artifact directory: %v", err)
	}
	initGotext(p.Base)

	var src watch.ChangeSource = watch.NewMtimeDetector()
	if *notify {
		fs, err := watch.NewFsnotifySource()
		if err != nil {
			log.Printf("filesystem notifications unavailable, falling back to polling: %v", err)
		} else {
			src = fs
		}
	}

	s := session.New(p, src)
	for _, err := range s.Start() {
		log.Printf("initial load: %v", err)
	}
	defer s.Close()

	if *headless {
		renderer.SetRenderer(tui.New())
	} else {
		renderer.SetRenderer(overlay.New())
	}

	if err := renderer.Run(s); err != nil {
		log.Fatalf("overlay: %v", err)
	}
}
