package export

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"image/color"
	"os"
	"path/filepath"
	"runtime"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
	"github.com/Dicklesworthstone/panelnav/pkg/nav"
)

// DefaultStoryboardFrames is the number of scroll offsets sampled.
const DefaultStoryboardFrames = 9

// ManifestName is the JSON description of a storyboard written next to
// its frames.
const ManifestName = "storyboard.json"

const controlBarHeight = 36

// StoryboardOptions configures SaveStoryboard.
type StoryboardOptions struct {
	// Dir receives frame-NN.svg, frame-NN.png and index.html.
	Dir      string
	Panels   []model.PanelRecord
	Viewport nav.Viewport
	// RegionStart is the scroll offset at which the section pins.
	RegionStart float64
	Frames      int
	NavOptions  []nav.Option
}

// StoryFrame is one rendered sample.
type StoryFrame struct {
	Offset float64   `json:"offset"`
	Frame  nav.Frame `json:"frame"`
	SVG    string    `json:"svg"`
	PNG    string    `json:"png"`
}

// Storyboard is the result of SaveStoryboard.
type Storyboard struct {
	Dir    string       `json:"dir"`
	Mode   model.Mode   `json:"mode"`
	Frames []StoryFrame `json:"frames"`
}

// SaveStoryboard samples the navigator at evenly spaced scroll offsets and
// writes each Frame as SVG and PNG, plus an index.html that pages through
// them. In pinned mode the samples span the scroll region; in stacked mode
// they span the natural document.
func SaveStoryboard(ctx context.Context, opts StoryboardOptions) (*Storyboard, error) {
	if len(opts.Panels) == 0 {
		return nil, fmt.Errorf("storyboard needs at least one panel")
	}
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		return nil, fmt.Errorf("invalid storyboard viewport %vx%v", opts.Viewport.Width, opts.Viewport.Height)
	}
	n := opts.Frames
	if n < 2 {
		n = DefaultStoryboardFrames
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create storyboard directory: %w", err)
	}

	probe := nav.Snapshot(opts.Panels, opts.Viewport, opts.RegionStart, opts.RegionStart, opts.NavOptions...)
	lo, hi := probe.Region.Start, probe.Region.End
	if probe.Mode != model.ModePinned {
		lo = 0
		hi = opts.RegionStart + float64(len(opts.Panels)-1)*opts.Viewport.Height
	}
	offsets := floats.Span(make([]float64, n), lo, hi)

	sb := &Storyboard{Dir: opts.Dir, Mode: probe.Mode, Frames: make([]StoryFrame, n)}
	for i, off := range offsets {
		sb.Frames[i] = StoryFrame{
			Offset: off,
			Frame:  nav.Snapshot(opts.Panels, opts.Viewport, opts.RegionStart, off, opts.NavOptions...),
			SVG:    fmt.Sprintf("frame-%02d.svg", i),
			PNG:    fmt.Sprintf("frame-%02d.png", i),
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, sf := range sb.Frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeSVG(filepath.Join(opts.Dir, sf.SVG), opts, sf.Frame); err != nil {
				return fmt.Errorf("render %s: %w", sf.SVG, err)
			}
			if err := writePNG(filepath.Join(opts.Dir, sf.PNG), opts, sf.Frame); err != nil {
				return fmt.Errorf("render %s: %w", sf.PNG, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := writeIndex(filepath.Join(opts.Dir, "index.html"), sb); err != nil {
		return nil, fmt.Errorf("write index: %w", err)
	}
	manifest, err := json.MarshalIndent(sb, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(opts.Dir, ManifestName), manifest, 0644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	return sb, nil
}

// painter is the drawing surface shared by the SVG and PNG renderers.
type painter interface {
	rect(x, y, w, h float64, fill color.RGBA, opacity float64)
	text(x, y float64, s string, fill color.RGBA, opacity float64)
}

type palette struct {
	bg, fg, image, accent color.RGBA
}

var (
	lightPalette = palette{
		bg:     color.RGBA{0xf5, 0xf5, 0xf0, 0xff},
		fg:     color.RGBA{0x1c, 0x1c, 0x1c, 0xff},
		image:  color.RGBA{0xc8, 0xd0, 0xd8, 0xff},
		accent: color.RGBA{0x7d, 0x56, 0xf4, 0xff},
	}
	darkPalette = palette{
		bg:     color.RGBA{0x1c, 0x1c, 0x24, 0xff},
		fg:     color.RGBA{0xee, 0xee, 0xee, 0xff},
		image:  color.RGBA{0x3a, 0x40, 0x4c, 0xff},
		accent: color.RGBA{0x04, 0xb5, 0x75, 0xff},
	}
	chrome = color.RGBA{0x10, 0x10, 0x10, 0xff}
	muted  = color.RGBA{0x80, 0x80, 0x80, 0xff}
)

func themePalette(t model.Theme) palette {
	if t.IsDark() {
		return darkPalette
	}
	return lightPalette
}

// paintFrame draws one navigator frame. Pinned panels sit at their track
// position shifted by the track offset; stacked panels sit at their
// document position relative to the scroll offset, faded by the reveal.
func paintFrame(p painter, opts StoryboardOptions, fr nav.Frame) {
	vp := opts.Viewport
	p.rect(0, 0, vp.Width, vp.Height+controlBarHeight, chrome, 1)

	for i, pf := range fr.Panels {
		if i >= len(opts.Panels) {
			break
		}
		rec := opts.Panels[i]
		pal := themePalette(rec.Theme)

		x, y, opacity := 0.0, 0.0, 1.0
		if fr.Mode == model.ModePinned {
			x = float64(i)*vp.Width + fr.TrackOffset
		} else {
			y = opts.RegionStart + float64(i)*vp.Height - fr.ScrollOffset + pf.TranslateY
			opacity = pf.Opacity
		}
		if x >= vp.Width || x+vp.Width <= 0 || y >= vp.Height || y+vp.Height <= 0 {
			continue
		}

		p.rect(x, y, vp.Width, vp.Height, pal.bg, opacity)
		if pf.HasImage {
			iw, ih := vp.Width*0.4, vp.Height*0.5
			ix := x + vp.Width*0.55 + pf.ImageOffset*iw/vp.Width
			p.rect(ix, y+vp.Height*0.25, iw, ih, pal.image, opacity)
			p.text(ix+8, y+vp.Height*0.25+18, rec.ImageRef, muted, opacity)
		}
		p.text(x+24, y+40, rec.Title, pal.accent, opacity)
		for j, f := range rec.Features {
			p.text(x+24, y+72+float64(j)*18, "- "+f.Text, pal.fg, opacity)
		}
	}

	// Control bar: counter and progress.
	barY := vp.Height
	counter := fmt.Sprintf("%d / %d", fr.ActiveIndex+1, fr.Total)
	if fr.Total == 0 {
		counter = "0 / 0"
	}
	p.text(12, barY+23, counter, lightPalette.bg, 1)
	trackX, trackW := 96.0, vp.Width-120
	if trackW > 0 {
		p.rect(trackX, barY+15, trackW, 6, muted, 1)
		p.rect(trackX, barY+15, trackW*fr.Progress, 6, lightPalette.accent, 1)
	}
}

type svgPainter struct {
	canvas *svg.SVG
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (s svgPainter) rect(x, y, w, h float64, fill color.RGBA, opacity float64) {
	s.canvas.Rect(int(x), int(y), int(w), int(h), fmt.Sprintf("fill:%s;fill-opacity:%.3f", hex(fill), opacity))
}

func (s svgPainter) text(x, y float64, str string, fill color.RGBA, opacity float64) {
	s.canvas.Text(int(x), int(y), str, fmt.Sprintf("fill:%s;fill-opacity:%.3f;font-family:monospace;font-size:13px", hex(fill), opacity))
}

func writeSVG(path string, opts StoryboardOptions, fr nav.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, h := int(opts.Viewport.Width), int(opts.Viewport.Height)+controlBarHeight
	canvas := svg.New(f)
	canvas.Start(w, h)
	canvas.Title(fmt.Sprintf("%s %d/%d progress %.3f", fr.Mode, fr.ActiveIndex+1, fr.Total, fr.Progress))
	paintFrame(svgPainter{canvas: canvas}, opts, fr)
	canvas.End()
	return f.Close()
}

type pngPainter struct {
	dc *gg.Context
}

func (p pngPainter) rect(x, y, w, h float64, fill color.RGBA, opacity float64) {
	p.dc.SetRGBA(float64(fill.R)/255, float64(fill.G)/255, float64(fill.B)/255, opacity)
	p.dc.DrawRectangle(x, y, w, h)
	p.dc.Fill()
}

func (p pngPainter) text(x, y float64, s string, fill color.RGBA, opacity float64) {
	p.dc.SetRGBA(float64(fill.R)/255, float64(fill.G)/255, float64(fill.B)/255, opacity)
	p.dc.DrawString(s, x, y)
}

func writePNG(path string, opts StoryboardOptions, fr nav.Frame) error {
	dc := gg.NewContext(int(opts.Viewport.Width), int(opts.Viewport.Height)+controlBarHeight)
	dc.SetFontFace(basicfont.Face7x13)
	paintFrame(pngPainter{dc: dc}, opts, fr)
	return dc.SavePNG(path)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>pnv storyboard</title>
<style>
body { background: #111; color: #eee; font-family: monospace; margin: 2em; }
figure { margin: 0 0 2em 0; }
img { max-width: 100%; border: 1px solid #333; }
</style>
</head>
<body>
<h1>Storyboard ({{.Mode}}, {{len .Frames}} frames)</h1>
{{range $i, $f := .Frames}}
<figure id="frame-{{$i}}">
  <img src="{{$f.SVG}}" alt="frame {{$i}}">
  <figcaption>offset {{printf "%.1f" $f.Offset}} &middot; panel {{$f.Frame.ActiveIndex}} &middot; progress {{printf "%.3f" $f.Frame.Progress}} &middot; <a href="{{$f.PNG}}">png</a></figcaption>
</figure>
{{end}}
</body>
</html>
`))

func writeIndex(path string, sb *Storyboard) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := indexTemplate.Execute(f, sb); err != nil {
		return err
	}
	return f.Close()
}
