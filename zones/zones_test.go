package zones

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-scene/images"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		box   images.Rect
		width int
		want  Zone
	}{
		{name: "Inside left third", box: images.Box(10, 10, 50, 100), width: 300, want: Left},
		{name: "Inside center third", box: images.Box(120, 0, 180, 10), width: 300, want: Center},
		{name: "Inside right third", box: images.Box(210, 0, 290, 10), width: 300, want: Right},
		{name: "Starts on center boundary", box: images.Box(100, 100, 150, 200), width: 300, want: Center},
		{name: "Mostly left", box: images.Box(60, 0, 130, 10), width: 300, want: Left},
		{name: "Mostly right", box: images.Box(170, 0, 280, 10), width: 300, want: Right},
		{name: "Spans all, center dominates", box: images.Box(50, 0, 260, 10), width: 300, want: Center},
		{name: "One pixel before center boundary", box: images.Box(99, 0, 100, 10), width: 300, want: Left},
		{name: "Left/center tie prefers left", box: images.Box(50, 0, 150, 10), width: 300, want: Left},
		{name: "Center/right tie prefers center", box: images.Box(150, 0, 250, 10), width: 300, want: Center},
		{name: "Three-way tie prefers left", box: images.Box(0, 0, 300, 10), width: 300, want: Left},
		{name: "Three-way tie with width not divisible by 3", box: images.Box(0, 0, 301, 10), width: 301, want: Left},
		{name: "Left/center tie with width not divisible by 3", box: images.Box(0, 0, 201, 10), width: 301, want: Left},
		{name: "Right edge of width not divisible by 3", box: images.Box(101, 0, 301, 10), width: 301, want: Right},
		{name: "Non-integer thirds", box: images.Box(200, 0, 300, 10), width: 640, want: Center},
		{name: "Overhangs right edge", box: images.Box(250, 0, 400, 10), width: 300, want: Right},
		{name: "Overhangs left edge", box: images.Box(-50, 0, 40, 10), width: 300, want: Left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.box, tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "overlaps=%v", Overlaps(tt.box, tt.width))
		})
	}
}

func TestOverlaps(t *testing.T) {
	assert.Equal(t, [3]float64{0, 50, 0}, Overlaps(images.Box(100, 100, 150, 200), 300))
	assert.Equal(t, [3]float64{1, 0, 0}, Overlaps(images.Box(99, 0, 100, 10), 300))
	assert.Equal(t, [3]float64{50, 50, 0}, Overlaps(images.Box(50, 0, 150, 10), 300))

	o := Overlaps(images.Box(0, 0, 301, 10), 301)
	assert.Equal(t, o[Left], o[Center])
	assert.Equal(t, o[Center], o[Right])
}

func TestClassify_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name  string
		box   images.Rect
		width int
	}{
		{name: "Zero width image", box: images.Box(0, 0, 10, 10), width: 0},
		{name: "Inverted box", box: images.Box(50, 0, 10, 10), width: 300},
		{name: "Flat box", box: images.Box(0, 10, 10, 10), width: 300},
		{name: "Entirely left of image", box: images.Box(-20, 0, 0, 10), width: 300},
		{name: "Entirely right of image", box: images.Box(300, 0, 320, 10), width: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.box, tt.width)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGeometry))
		})
	}
}

func TestZone_Text(t *testing.T) {
	out, err := json.Marshal(map[string]Zone{"zone": Center})
	require.NoError(t, err)
	assert.JSONEq(t, `{"zone":"center"}`, string(out))

	var z Zone
	require.NoError(t, z.UnmarshalText([]byte("Right")))
	assert.Equal(t, Right, z)
	assert.Error(t, z.UnmarshalText([]byte("up")))

	_, err = Zone(7).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "zone(7)", Zone(7).String())
}
