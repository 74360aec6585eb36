package util

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nvr-ai/go-scene/common"
	"github.com/nvr-ai/go-scene/depth"
	"github.com/nvr-ai/go-scene/images"
	"github.com/nvr-ai/go-scene/labels"
)

// OpenImage decodes a jpg, png, webp, bmp or tiff file.
func OpenImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open image %s", path)
	}
	return img, nil
}

// rawDetection is the detector output as written to disk. Either Label or
// ClassID identifies the object.
type rawDetection struct {
	Label   string      `json:"label"`
	ClassID *int        `json:"class_id"`
	Box     images.Rect `json:"box"`
}

// LoadDetections reads a JSON array of {"label" | "class_id", "box"} objects.
//
// Class ids are resolved through table. Names are resolved through table too;
// English COCO names are translated into the table's language when the table
// does not know them directly.
//
// Arguments:
// - path: Path to the detections JSON file.
// - table: Label table for the output language.
//
// Returns:
// - []common.Detection: Detections in file order.
// - error: Error if loading or label resolution fails.
func LoadDetections(path string, table *labels.Table) ([]common.Detection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []rawDetection
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse detections %s", path)
	}

	dets := make([]common.Detection, 0, len(raw))
	for i, r := range raw {
		switch {
		case r.ClassID != nil:
			det, err := common.NewDetection(table, *r.ClassID, r.Box)
			if err != nil {
				return nil, errors.Wrapf(err, "detection %d", i)
			}
			dets = append(dets, det)
		case r.Label != "":
			dets = append(dets, common.Detection{Label: resolveName(r.Label, table), Box: r.Box})
		default:
			return nil, errors.Errorf("detection %d has neither label nor class_id", i)
		}
	}
	return dets, nil
}

func resolveName(name string, table *labels.Table) labels.Label {
	if _, err := table.Index(name); err == nil || table == labels.COCO {
		return table.ByName(name)
	}
	if l, err := labels.Translate(labels.Of(name), labels.COCO, table); err == nil {
		return l
	}
	return table.ByName(name)
}

// LoadDepthMap reads a depth map from a 16-bit grayscale image or a JSON
// array of rows in meters.
//
// Images are resampled to width x height when both are positive so that the
// map lines up with the source image. JSON maps must already line up.
func LoadDepthMap(path string, scale float64, width, height int) (*depth.Map, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var rows [][]float32
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, errors.Wrapf(err, "parse depth rows %s", path)
		}
		m, err := depth.FromRows(rows)
		if err != nil {
			return nil, err
		}
		if width > 0 && height > 0 && (m.Width() != width || m.Height() != height) {
			return nil, errors.Errorf("depth map %dx%d does not match image %dx%d", m.Width(), m.Height(), width, height)
		}
		return m, nil
	}

	img, err := OpenImage(path)
	if err != nil {
		return nil, err
	}
	if width > 0 && height > 0 {
		img = depth.Resample(img, width, height)
	}
	return depth.FromImage(img, scale)
}

// FrameFiles groups the files belonging to one frame of a directory.
type FrameFiles struct {
	// Frame is the frame number parsed from the file name.
	Frame int
	// Detections is the frame-N.json detections file.
	Detections string
	// Depth is the frame-N.depth.{png,json} depth file.
	Depth string
	// Image is the optional frame-N.{jpg,jpeg,png,webp,bmp} source image.
	Image string
}

// LoadDirectoryFrames pairs detection, depth and image files by frame number.
//
// Arguments:
// - dir: Directory containing frame-N.json, frame-N.depth.png and optional frame-N.jpg files.
//
// Returns:
// - []FrameFiles: Frames with both detections and depth, sorted by frame number.
// - error: Error if the directory cannot be read.
func LoadDirectoryFrames(dir string) ([]FrameFiles, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	frames := map[int]*FrameFiles{}
	get := func(n int) *FrameFiles {
		if f, ok := frames[n]; ok {
			return f
		}
		f := &FrameFiles{Frame: n}
		frames[n] = f
		return f
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasPrefix(file.Name(), "frame-") {
			continue
		}
		name := file.Name()
		path := filepath.Join(dir, name)
		stem, ext := strings.TrimPrefix(name, "frame-"), strings.ToLower(filepath.Ext(name))
		stem = strings.TrimSuffix(stem, filepath.Ext(name))

		isDepth := strings.HasSuffix(stem, ".depth")
		frame, err := strconv.Atoi(strings.TrimSuffix(stem, ".depth"))
		if err != nil {
			continue
		}

		switch {
		case isDepth && (ext == ".png" || ext == ".json"):
			get(frame).Depth = path
		case isDepth:
			continue
		case ext == ".json":
			get(frame).Detections = path
		case ext == ".jpg", ext == ".jpeg", ext == ".png", ext == ".webp", ext == ".bmp":
			get(frame).Image = path
		}
	}

	out := make([]FrameFiles, 0, len(frames))
	for _, f := range frames {
		if f.Detections != "" && f.Depth != "" {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Frame < out[j].Frame
	})
	return out, nil
}
