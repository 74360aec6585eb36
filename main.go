package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-scene/config"
	"github.com/nvr-ai/go-scene/labels"
	"github.com/nvr-ai/go-scene/profiler"
	"github.com/nvr-ai/go-scene/scene"
	"github.com/nvr-ai/go-scene/util"
)

// InputConfig holds the files describing one frame.
type InputConfig struct {
	Detections string
	Depth      string
	Image      string
	Width      int
}

func main() {
	var (
		configPath     string
		detectionsPath string
		depthPath      string
		imagePath      string
		dir            string
		width          int
		locale         string
		policy         string
		depthScale     float64
		workers        int
		verbose        bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	flag.StringVar(&detectionsPath, "detections", "", "Path to the detections JSON file")
	flag.StringVar(&depthPath, "depth", "", "Path to the depth map (16-bit PNG or JSON rows)")
	flag.StringVar(&imagePath, "image", "", "Path to the source image (sets width and depth resampling)")
	flag.StringVar(&dir, "dir", "", "Directory of frame-N.json / frame-N.depth.png files to describe in order")
	flag.IntVar(&width, "width", 0, "Source image width in pixels (default: image or depth map width)")
	flag.StringVar(&locale, "locale", "", "Output language: pt-BR or en")
	flag.StringVar(&policy, "policy", "", "Per-object failure policy: skip or fail")
	flag.Float64Var(&depthScale, "depth-scale", 0, "Meters per depth-image gray level")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "Frames processed in parallel with -dir")
	flag.BoolVar(&verbose, "v", false, "Log progress to stderr")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if locale != "" {
		cfg.Locale = locale
	}
	if policy != "" {
		cfg.Policy = policy
	}
	if depthScale > 0 {
		cfg.DepthScale = depthScale
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	table, err := labels.ForLocale(cfg.Locale)
	if err != nil {
		log.Fatal(err)
	}
	engine := scene.NewEngine(opts)

	if !verbose {
		log.SetOutput(io.Discard)
	}
	log.Printf("locale=%s policy=%s depth_scale=%g", opts.Locale.Name, opts.Policy, cfg.DepthScale)

	var inputs []InputConfig
	switch {
	case dir != "" && (detectionsPath != "" || depthPath != ""):
		fmt.Fprintln(os.Stderr, "error: cannot combine -dir with -detections/-depth")
		os.Exit(2)
	case dir != "":
		frames, err := util.LoadDirectoryFrames(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		for _, f := range frames {
			inputs = append(inputs, InputConfig{Detections: f.Detections, Depth: f.Depth, Image: f.Image, Width: width})
		}
		log.Printf("found %d frames in %s", len(inputs), dir)
	case detectionsPath != "" && depthPath != "":
		inputs = append(inputs, InputConfig{Detections: detectionsPath, Depth: depthPath, Image: imagePath, Width: width})
	default:
		fmt.Fprintf(os.Stderr, "usage: %s -detections dets.json -depth depth.png [-image frame.jpg | -width W] [-locale pt-BR|en]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -dir frames/\n", os.Args[0])
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	if len(inputs) == 1 {
		enc.SetIndent("", "  ")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	prof := profiler.New()
	results, err := scene.ProcessFrames(ctx, len(inputs), workers, func(_ context.Context, i int) (*scene.Report, error) {
		done := prof.StartOperation("frame")
		defer done()
		return processFrame(engine, table, cfg.DepthScale, inputs[i])
	})
	if err != nil {
		log.Printf("batch interrupted: %v", err)
	}

	failed := 0
	for i, res := range results {
		in := inputs[i]
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", in.Detections, res.Err)
			failed++
			continue
		}
		if res.Report == nil {
			continue
		}
		report := res.Report
		for _, s := range report.Skipped {
			log.Printf("%s: skipped detection %d (%s): %s", in.Detections, s.Index, s.Label, s.Reason)
		}
		prof.RecordMetric("objects", float64(len(report.Results)))
		prof.RecordMetric("skipped", float64(len(report.Skipped)))
		log.Printf("%s: %s", in.Detections, report.Description)
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "error: write report: %v\n", err)
			os.Exit(1)
		}
	}
	if verbose {
		_ = prof.WriteReport(os.Stderr)
	}
	if failed > 0 || err != nil {
		stop()
		os.Exit(1)
	}
}

// processFrame loads one frame's inputs and runs the engine on them.
func processFrame(engine *scene.Engine, table *labels.Table, depthScale float64, in InputConfig) (*scene.Report, error) {
	dets, err := util.LoadDetections(in.Detections, table)
	if err != nil {
		return nil, err
	}

	imgWidth, imgHeight := in.Width, 0
	if in.Image != "" {
		img, err := util.OpenImage(in.Image)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		imgHeight = b.Dy()
		if imgWidth <= 0 {
			imgWidth = b.Dx()
		}
	}

	m, err := util.LoadDepthMap(in.Depth, depthScale, imgWidth, imgHeight)
	if err != nil {
		return nil, errors.Wrap(err, "depth map")
	}
	return engine.Process(dets, m, imgWidth)
}
