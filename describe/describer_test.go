package describe

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-scene/common"
	"github.com/nvr-ai/go-scene/images"
	"github.com/nvr-ai/go-scene/labels"
	"github.com/nvr-ai/go-scene/zones"
)

// at builds an annotated detection spanning [x1,x2) horizontally.
func at(l labels.Label, x1, x2 int, meters float64) common.AnnotatedDetection {
	return common.Detection{Label: l, Box: images.Box(x1, 0, x2, 10)}.WithDistance(meters)
}

const (
	leftX1, leftX2     = 10, 50
	centerX1, centerX2 = 120, 180
	rightX1, rightX2   = 220, 280
	width              = 300
)

func TestDescribe_English(t *testing.T) {
	d := New(English)
	person, dog, cat := labels.Of("person"), labels.Of("dog"), labels.Of("cat")

	tests := []struct {
		name string
		dets []common.AnnotatedDetection
		want string
	}{
		{
			name: "Empty input",
			dets: nil,
			want: "No objects were detected in the image.",
		},
		{
			name: "Single object uses singular intro",
			dets: []common.AnnotatedDetection{at(dog, centerX1, centerX2, 3.2)},
			want: "There is a dog at 3 meters in front of you.",
		},
		{
			name: "Same label twice is counted and pluralized",
			dets: []common.AnnotatedDetection{
				at(person, 10, 50, 5),
				at(person, 60, 90, 5),
			},
			want: "There are 2 people at 5 meters to your left.",
		},
		{
			name: "Different labels in one group are joined",
			dets: []common.AnnotatedDetection{
				at(dog, centerX1, centerX2, 3.1),
				at(cat, centerX1, centerX2, 2.8),
			},
			want: "There are a dog and a cat at 3 meters in front of you.",
		},
		{
			name: "Mixed counts keep first-seen label order",
			dets: []common.AnnotatedDetection{
				at(cat, rightX1, rightX2, 4),
				at(dog, rightX1, rightX2, 4),
				at(dog, rightX1, rightX2, 4.3),
				at(dog, rightX1, rightX2, 3.6),
			},
			want: "There are a cat and 3 dogs at 4 meters to your right.",
		},
		{
			name: "Groups are rendered in first-seen order",
			dets: []common.AnnotatedDetection{
				at(dog, rightX1, rightX2, 7),
				at(person, leftX1, leftX2, 2),
				at(dog, rightX1, rightX2, 7.4),
				at(cat, leftX1, leftX2, 9),
			},
			want: "There are 2 dogs at 7 meters to your right, a person at 2 meters to your left, a cat at 9 meters to your left.",
		},
		{
			name: "Same zone, different distance are separate phrases",
			dets: []common.AnnotatedDetection{
				at(dog, leftX1, leftX2, 1.4),
				at(dog, leftX1, leftX2, 1.6),
			},
			want: "There are a dog at 1 meters to your left, a dog at 2 meters to your left.",
		},
		{
			name: "Same distance, different zone are separate phrases",
			dets: []common.AnnotatedDetection{
				at(dog, leftX1, leftX2, 2),
				at(dog, centerX1, centerX2, 2),
			},
			want: "There are a dog at 2 meters to your left, a dog at 2 meters in front of you.",
		},
		{
			name: "Vowel-initial nouns take an",
			dets: []common.AnnotatedDetection{
				at(labels.Of("elephant"), centerX1, centerX2, 10),
				at(labels.Of("umbrella"), centerX1, centerX2, 10),
			},
			want: "There are an elephant and an umbrella at 10 meters in front of you.",
		},
		{
			name: "Half meters round away from zero",
			dets: []common.AnnotatedDetection{at(dog, leftX1, leftX2, 2.5)},
			want: "There is a dog at 3 meters to your left.",
		},
		{
			name: "Sub-meter distances round to zero",
			dets: []common.AnnotatedDetection{at(dog, leftX1, leftX2, 0.4)},
			want: "There is a dog at 0 meters to your left.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Describe(tt.dets, width)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribe_PortugueseBR(t *testing.T) {
	d := New(PortugueseBR)
	pessoa := labels.COCOPortuguese.ByName("pessoa")
	cachorro := labels.COCOPortuguese.ByName("cachorro")
	aviao := labels.COCOPortuguese.ByName("avião")

	tests := []struct {
		name string
		dets []common.AnnotatedDetection
		want string
	}{
		{
			name: "Empty input",
			want: "Não foi identificado nenhum objeto na imagem.",
		},
		{
			name: "Single feminine noun",
			dets: []common.AnnotatedDetection{at(pessoa, centerX1, centerX2, 2)},
			want: "Foi identificado na imagem uma pessoa a 2 metros na sua frente.",
		},
		{
			name: "Two people to the left",
			dets: []common.AnnotatedDetection{
				at(pessoa, 10, 50, 5),
				at(pessoa, 60, 90, 5),
			},
			want: "Foram identificados na imagem 2 pessoas a 5 metros à sua esquerda.",
		},
		{
			name: "Gender agreement within a group",
			dets: []common.AnnotatedDetection{
				at(pessoa, rightX1, rightX2, 1.2),
				at(cachorro, rightX1, rightX2, 0.9),
			},
			want: "Foram identificados na imagem uma pessoa e um cachorro a 1 metros à sua direita.",
		},
		{
			name: "Nasal plural",
			dets: []common.AnnotatedDetection{
				at(aviao, leftX1, leftX2, 30),
				at(aviao, leftX1, leftX2, 30),
				at(cachorro, centerX1, centerX2, 4),
			},
			want: "Foram identificados na imagem 2 aviões a 30 metros à sua esquerda, um cachorro a 4 metros na sua frente.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Describe(tt.dets, width)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribe_MissingDistance(t *testing.T) {
	d := New(English)
	dets := []common.AnnotatedDetection{
		at(labels.Of("dog"), leftX1, leftX2, 2),
		{Detection: common.Detection{Label: labels.Of("cat"), Box: images.Box(0, 0, 10, 10)}},
	}

	got, err := d.Describe(dets, width)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDistance))
	assert.Empty(t, got, "no partial description")

	_, err = d.Describe([]common.AnnotatedDetection{at(labels.Of("dog"), leftX1, leftX2, math.NaN())}, width)
	assert.True(t, errors.Is(err, ErrMissingDistance))
}

func TestDescribe_InvalidGeometry(t *testing.T) {
	d := New(English)

	_, err := d.Describe([]common.AnnotatedDetection{at(labels.Of("dog"), 50, 10, 2)}, width)
	assert.True(t, errors.Is(err, zones.ErrInvalidGeometry))

	_, err = d.Describe([]common.AnnotatedDetection{at(labels.Of("dog"), 10, 50, 2)}, 0)
	assert.True(t, errors.Is(err, zones.ErrInvalidGeometry))
}

func TestDescribe_Deterministic(t *testing.T) {
	d := New(English)
	dets := []common.AnnotatedDetection{
		at(labels.Of("dog"), rightX1, rightX2, 7),
		at(labels.Of("person"), leftX1, leftX2, 2),
		at(labels.Of("dog"), rightX1, rightX2, 7.4),
	}

	first, err := d.Describe(dets, width)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		got, err := d.Describe(dets, width)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestGroup(t *testing.T) {
	dog, cat := labels.Of("dog"), labels.Of("cat")
	groups, err := Group([]common.AnnotatedDetection{
		at(dog, centerX1, centerX2, 3.4),
		at(cat, leftX1, leftX2, 1),
		at(cat, centerX1, centerX2, 2.6),
	}, width)
	require.NoError(t, err)

	assert.Equal(t, 2, groups.Len())
	assert.Equal(t, 3, groups.Total())
	assert.Equal(t, []GroupKey{
		{Distance: 3, Zone: zones.Center},
		{Distance: 1, Zone: zones.Left},
	}, groups.Keys())
	assert.Equal(t, []labels.Label{dog, cat}, groups.Labels(GroupKey{Distance: 3, Zone: zones.Center}))
}

func TestRender_EmptyGroups(t *testing.T) {
	assert.Equal(t, English.Nothing, New(English).Render(NewGroups()))
}

func TestGroupZoned(t *testing.T) {
	dog, cat := labels.Of("dog"), labels.Of("cat")
	dets := []common.AnnotatedDetection{
		at(dog, leftX1, leftX2, 3.4),
		at(cat, leftX1, leftX2, 3),
	}

	// The given zones are used as-is, even where the boxes say otherwise.
	groups, err := GroupZoned(dets, []zones.Zone{zones.Right, zones.Right})
	require.NoError(t, err)
	assert.Equal(t, []GroupKey{{Distance: 3, Zone: zones.Right}}, groups.Keys())
	assert.Equal(t, "There are a dog and a cat at 3 meters to your right.", New(English).Render(groups))

	_, err = GroupZoned(dets, []zones.Zone{zones.Left})
	assert.Error(t, err)

	_, err = GroupZoned([]common.AnnotatedDetection{{Detection: dets[0].Detection}}, []zones.Zone{zones.Left})
	assert.ErrorIs(t, err, ErrMissingDistance)
}
