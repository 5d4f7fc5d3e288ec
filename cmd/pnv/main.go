package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/panelnav/pkg/config"
	"github.com/Dicklesworthstone/panelnav/pkg/export"
	"github.com/Dicklesworthstone/panelnav/pkg/history"
	"github.com/Dicklesworthstone/panelnav/pkg/loader"
	"github.com/Dicklesworthstone/panelnav/pkg/model"
	"github.com/Dicklesworthstone/panelnav/pkg/nav"
	"github.com/Dicklesworthstone/panelnav/pkg/ui"
	"github.com/Dicklesworthstone/panelnav/pkg/updater"
	"github.com/Dicklesworthstone/panelnav/pkg/watcher"
)

const version = "0.1.0"

// Robot and storyboard viewports when --width/--height are not given.
const (
	robotWidth, robotHeight   = 100, 30
	exportWidth, exportHeight = 960, 540
)

func main() {
	help := flag.Bool("help", false, "Show help")
	showVersion := flag.Bool("version", false, "Show version")
	checkUpdate := flag.Bool("check-update", false, "Check GitHub for a newer release and exit")
	configPath := flag.String("config", "", "Config file (default "+config.DefaultPath()+")")
	printConfig := flag.Bool("print-config", false, "Print the effective configuration and exit")
	contentPath := flag.String("content", "", "Panel content file (default: search "+loader.ContentDir+"/)")
	title := flag.String("title", "", "Title shown above the panels")
	logFile := flag.String("log", "", "Debug log file (overrides log.file)")
	breakpoint := flag.Int("breakpoint", 0, "Minimum terminal width for the pinned track (overrides nav.breakpoint)")
	start := flag.Int("start", 0, "Start at panel N (1-based)")
	pick := flag.Bool("pick", false, "Choose the start panel interactively")
	noWatch := flag.Bool("no-watch", false, "Do not reload content on change")
	noHistory := flag.Bool("no-history", false, "Do not resume or record the last position")
	recent := flag.Bool("recent", false, "List recently viewed content and exit")
	forget := flag.Bool("forget", false, "Forget the saved position for the content and exit")
	robotFrame := flag.String("robot-frame", "", "Print the JSON frame for a scroll offset and exit")
	width := flag.Int("width", 0, "Viewport width for --robot-frame and --export")
	height := flag.Int("height", 0, "Viewport height for --robot-frame and --export")
	exportDir := flag.String("export", "", "Render a storyboard of SVG/PNG frames into DIR")
	frames := flag.Int("frames", export.DefaultStoryboardFrames, "Number of storyboard frames")
	preview := flag.Bool("preview", false, "Serve the --export directory locally after rendering")
	flag.Parse()

	if *help {
		fmt.Println("Usage: pnv [options]")
		fmt.Println("\nBrowse content panels on a scroll-driven horizontal track.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Println("pnv version " + version)
		os.Exit(0)
	}

	if *checkUpdate {
		tag, url, err := updater.CheckForUpdates(context.Background(), updater.ReleasesURL, version)
		switch {
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error checking for updates: %v\n", err)
			os.Exit(1)
		case tag == "":
			fmt.Println("pnv " + version + " is up to date")
		default:
			fmt.Printf("pnv %s is available: %s\n", tag, url)
		}
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *breakpoint > 0 {
		cfg.Nav.Breakpoint = *breakpoint
	}
	if *contentPath != "" {
		cfg.Content.Path = *contentPath
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *noWatch {
		cfg.Content.Watch = false
	}
	if *noHistory {
		cfg.History.Enabled = false
	}

	if *printConfig {
		if err := cfg.Print(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing config: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *recent {
		if err := printRecent(os.Stdout, cfg.History.Path); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if cfg.Log.File == "" {
		log.SetOutput(io.Discard)
	} else {
		f, err := tea.LogToFile(cfg.Log.File, "pnv")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	path, panels, err := loadContent(cfg.Content.Path)
	if err != nil {
		if errors.Is(err, loader.ErrNoPanels) {
			fmt.Fprintf(os.Stderr, "No panels found. Create %s with a list of panels.\n",
				filepath.Join(loader.ContentDir, "panels.yaml"))
		} else {
			fmt.Fprintf(os.Stderr, "Error loading panels: %v\n", err)
		}
		os.Exit(1)
	}
	log.Printf("[main] loaded %d panels from %s", len(panels), path)

	if *forget {
		hdb, err := history.OpenDB(cfg.History.Path)
		if err == nil {
			err = hdb.Forget(path)
			hdb.Close()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error forgetting position: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Forgot saved position for " + path)
		os.Exit(0)
	}

	if *robotFrame != "" {
		offset, err := strconv.ParseFloat(*robotFrame, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --robot-frame offset %q: %v\n", *robotFrame, err)
			os.Exit(1)
		}
		vp := viewportOr(*width, *height, robotWidth, robotHeight)
		if err := printFrame(os.Stdout, panels, vp, offset, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding frame: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *exportDir != "" {
		if err := runExport(*exportDir, panels, viewportOr(*width, *height, exportWidth, exportHeight), *frames, cfg, *preview); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting storyboard: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		// Not a terminal: emit the opening frame instead of a TUI.
		vp := viewportOr(*width, *height, robotWidth, robotHeight)
		if err := printFrame(os.Stdout, panels, vp, 0, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding frame: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	startIndex := -1
	if *start > 0 {
		startIndex = *start - 1
	}
	if *pick {
		idx, err := pickPanel(panels)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error picking panel: %v\n", err)
			os.Exit(1)
		}
		startIndex = idx
	}

	var hdb *history.DB
	if cfg.History.Enabled {
		hdb, err = history.OpenDB(cfg.History.Path)
		if err != nil {
			log.Printf("[main] history disabled: %v", err)
			hdb = nil
		} else {
			defer hdb.Close()
		}
	}

	if *title == "" {
		*title = defaultTitle(path)
	}
	m := ui.NewModel(panels, ui.Options{
		Title:      *title,
		Source:     path,
		Config:     cfg,
		History:    hdb,
		StartIndex: startIndex,
		Clipboard:  true,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.Content.Watch {
		w, err := watcher.Watch(path,
			func(panels []model.PanelRecord) { p.Send(ui.ReloadMsg{Panels: panels}) },
			watcher.WithErrorHandler(func(err error) { p.Send(ui.ReloadMsg{Err: err}) }),
		)
		if err != nil {
			log.Printf("[main] content watch disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running pnv: %v\n", err)
		os.Exit(1)
	}
}

// loadContent reads an explicit content file, or the first candidate in
// the content directory of the working tree.
func loadContent(path string) (string, []model.PanelRecord, error) {
	if path == "" {
		found, err := loader.FindContentFile("")
		if err != nil {
			return "", nil, err
		}
		path = found
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, err
	}
	panels, err := loader.LoadPanelsFromFile(abs)
	if err != nil {
		return "", nil, err
	}
	return abs, panels, nil
}

func defaultTitle(path string) string {
	dir := filepath.Dir(path)
	if filepath.Base(dir) == loader.ContentDir {
		dir = filepath.Dir(dir)
	}
	name := filepath.Base(dir)
	if name == "." || name == string(filepath.Separator) {
		return "Panels"
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

func viewportOr(w, h, defW, defH int) nav.Viewport {
	if w <= 0 {
		w = defW
	}
	if h <= 0 {
		h = defH
	}
	return nav.Viewport{Width: float64(w), Height: float64(h)}
}

// printFrame writes the settled frame for a scroll offset in the terminal
// host's geometry: intro rows above the section, one unit per cell.
func printFrame(w io.Writer, panels []model.PanelRecord, vp nav.Viewport, offset float64, cfg *config.Config) error {
	fr := nav.Snapshot(panels, vp, ui.HeroHeight, offset, cfg.NavOptions()...)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fr)
}

func runExport(dir string, panels []model.PanelRecord, vp nav.Viewport, frames int, cfg *config.Config, serve bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Pixel storyboards scale the column breakpoint to a pixel width.
	opts := append(cfg.NavOptions(), nav.WithBreakpoint(float64(cfg.Nav.Breakpoint)*8))
	sb, err := export.SaveStoryboard(ctx, export.StoryboardOptions{
		Dir:         dir,
		Panels:      panels,
		Viewport:    vp,
		RegionStart: vp.Height / 4,
		Frames:      frames,
		NavOptions:  opts,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d %s frames to %s\n", len(sb.Frames), sb.Mode, dir)

	if !serve {
		return nil
	}
	pc := export.DefaultPreviewConfig()
	pc.Dir = dir
	return export.StartPreviewWithConfig(pc)
}

// printRecent lists saved positions, newest first.
func printRecent(w io.Writer, dbPath string) error {
	hdb, err := history.OpenDB(dbPath)
	if err != nil {
		return err
	}
	defer hdb.Close()

	positions, err := hdb.Recent(20)
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		fmt.Fprintln(w, "No saved positions.")
		return nil
	}
	for _, pos := range positions {
		fmt.Fprintf(w, "%s  panel %d (%3.0f%%)  %s\n",
			pos.UpdatedAt.Local().Format("2006-01-02 15:04"), pos.ActiveIndex+1, pos.Progress*100, pos.Source)
	}
	return nil
}

func pickPanel(panels []model.PanelRecord) (int, error) {
	options := make([]huh.Option[int], len(panels))
	for i, p := range panels {
		options[i] = huh.NewOption(fmt.Sprintf("%d. %s", i+1, p.Title), i)
	}
	choice := 0
	err := huh.NewSelect[int]().
		Title("Start at panel").
		Options(options...).
		Value(&choice).
		Run()
	return choice, err
}
