package labels

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTables(t *testing.T) {
	require.Equal(t, 80, COCO.Len())
	require.Equal(t, COCO.Len(), COCOPortuguese.Len(), "translated table must keep detector indices")

	tests := []struct {
		idx    int
		en     string
		pt     string
		gender Gender
	}{
		{0, "person", "pessoa", Feminine},
		{16, "dog", "cachorro", Masculine},
		{4, "airplane", "avião", Masculine},
		{62, "tv", "televisão", Feminine},
		{79, "toothbrush", "escova de dentes", Feminine},
	}

	for _, tt := range tests {
		en, err := COCO.Lookup(tt.idx)
		require.NoError(t, err)
		assert.Equal(t, tt.en, en.Name)

		pt, err := COCOPortuguese.Lookup(tt.idx)
		require.NoError(t, err)
		assert.Equal(t, tt.pt, pt.Name)
		assert.Equal(t, tt.gender, pt.Gender)
	}
}

func TestTable_LookupOutOfRange(t *testing.T) {
	_, err := COCO.Lookup(80)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownClass))

	_, err = COCO.Lookup(-1)
	assert.Error(t, err)
}

func TestTable_ByName(t *testing.T) {
	assert.Equal(t, Fem("vaca"), COCOPortuguese.ByName("vaca"))
	assert.Equal(t, Of("drone"), COCOPortuguese.ByName("drone"), "unknown names default to masculine")

	idx, err := COCO.Index("dog")
	require.NoError(t, err)
	assert.Equal(t, 16, idx)

	_, err = COCO.Index("drone")
	assert.Error(t, err)
}

func TestTranslate(t *testing.T) {
	l, err := Translate(Of("dog"), COCO, COCOPortuguese)
	require.NoError(t, err)
	assert.Equal(t, Of("cachorro"), l)

	l, err = Translate(Of("pessoa"), COCOPortuguese, COCO)
	require.NoError(t, err)
	assert.Equal(t, Of("person"), l)

	_, err = Translate(Of("unicorn"), COCO, COCOPortuguese)
	assert.Error(t, err)
}

func TestForLocale(t *testing.T) {
	tbl, err := ForLocale("pt-BR")
	require.NoError(t, err)
	assert.Same(t, COCOPortuguese, tbl)

	tbl, err = ForLocale("EN")
	require.NoError(t, err)
	assert.Same(t, COCO, tbl)

	_, err = ForLocale("fr")
	assert.Error(t, err)
}

func TestLabel_JSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Label Label `json:"label"`
	}{Fem("pessoa")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"pessoa"}`, string(out))

	var in struct {
		Label Label `json:"label"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"label":"dog"}`), &in))
	assert.Equal(t, Of("dog"), in.Label)
}
