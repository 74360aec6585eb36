// Package labels - Lookup tables from model output class ids to display labels.
//
// The scene describer never sees raw detector indices. A Table is injected at
// the edge so the same engine can speak for any detector family and language.
package labels

import (
	"strings"

	"github.com/pkg/errors"
)

// Gender is the grammatical gender of a noun, used for article agreement.
type Gender int

const (
	// Masculine is the default gender for labels with no explicit entry.
	Masculine Gender = iota
	// Feminine nouns take the feminine indefinite article.
	Feminine
)

func (g Gender) String() string {
	if g == Feminine {
		return "feminine"
	}
	return "masculine"
}

// Label is one displayable object category.
type Label struct {
	// Name is the singular display form, e.g. "dog" or "cachorro".
	Name string
	// Gender drives article selection in gendered languages.
	Gender Gender
}

// Of returns a masculine label with the given name.
func Of(name string) Label {
	return Label{Name: name}
}

// Fem returns a feminine label with the given name.
func Fem(name string) Label {
	return Label{Name: name, Gender: Feminine}
}

func (l Label) String() string {
	return l.Name
}

// MarshalText encodes the label as its display name.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.Name), nil
}

// UnmarshalText decodes a bare display name. The gender is unknown at this
// point; resolve through Table.ByName when it matters.
func (l *Label) UnmarshalText(text []byte) error {
	*l = Label{Name: string(text)}
	return nil
}

// ErrUnknownClass is returned when a class id has no entry in a table.
var ErrUnknownClass = errors.New("unknown class")

// Table maps zero-based model output indices to labels.
type Table struct {
	// Locale the labels are written in, e.g. "en" or "pt-BR".
	Locale string
	labels []Label
	// nameToIdx for fast lookup by name
	nameToIdx map[string]int
}

// NewTable builds a table whose index i resolves to labels[i].
func NewTable(locale string, labels []Label) *Table {
	t := &Table{
		Locale:    locale,
		labels:    append([]Label(nil), labels...),
		nameToIdx: make(map[string]int, len(labels)),
	}
	for i, l := range t.labels {
		if _, dup := t.nameToIdx[l.Name]; !dup {
			t.nameToIdx[l.Name] = i
		}
	}
	return t
}

// Len returns the number of classes in the table.
func (t *Table) Len() int {
	return len(t.labels)
}

// Lookup returns the label for a model output index.
func (t *Table) Lookup(idx int) (Label, error) {
	if idx < 0 || idx >= len(t.labels) {
		return Label{}, errors.Wrapf(ErrUnknownClass, "index %d out of range for %q table", idx, t.Locale)
	}
	return t.labels[idx], nil
}

// Index returns the model output index for a display name.
func (t *Table) Index(name string) (int, error) {
	idx, ok := t.nameToIdx[name]
	if !ok {
		return -1, errors.Wrapf(ErrUnknownClass, "name %q not found in %q table", name, t.Locale)
	}
	return idx, nil
}

// ByName resolves a display name to its table entry, keeping the gender the
// table records. Names the table does not know become masculine labels.
func (t *Table) ByName(name string) Label {
	if idx, ok := t.nameToIdx[name]; ok {
		return t.labels[idx]
	}
	return Of(name)
}

// Translate maps a label from one table to the entry with the same index in
// another. Tables built from the same detector share indices.
func Translate(l Label, from, to *Table) (Label, error) {
	idx, err := from.Index(l.Name)
	if err != nil {
		return Label{}, err
	}
	return to.Lookup(idx)
}

// ForLocale returns the built-in COCO table for a locale name.
func ForLocale(locale string) (*Table, error) {
	switch strings.ToLower(locale) {
	case "en", "en-us", "english":
		return COCO, nil
	case "pt", "pt-br", "portuguese":
		return COCOPortuguese, nil
	default:
		return nil, errors.Errorf("no label table for locale %q", locale)
	}
}

// cocoNames is the 80 COCO classes in YOLO order (no background).
var cocoNames = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train", "truck", "boat",
	"traffic light", "fire hydrant", "stop sign", "parking meter", "bench", "bird", "cat", "dog", "horse",
	"sheep", "cow", "elephant", "bear", "zebra", "giraffe", "backpack", "umbrella", "handbag", "tie",
	"suitcase", "frisbee", "skis", "snowboard", "sports ball", "kite", "baseball bat", "baseball glove",
	"skateboard", "surfboard", "tennis racket", "bottle", "wine glass", "cup", "fork", "knife", "spoon",
	"bowl", "banana", "apple", "sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut",
	"cake", "chair", "couch", "potted plant", "bed", "dining table", "toilet", "tv", "laptop", "mouse",
	"remote", "keyboard", "cell phone", "microwave", "oven", "toaster", "sink", "refrigerator", "book",
	"clock", "vase", "scissors", "teddy bear", "hair drier", "toothbrush",
}

// COCO is the English YOLO/COCO table. YOLO models index directly into it.
var COCO = NewTable("en", func() []Label {
	out := make([]Label, len(cocoNames))
	for i, n := range cocoNames {
		out[i] = Of(n)
	}
	return out
}())

// COCOPortuguese is the Brazilian Portuguese translation of COCO, with the
// grammatical gender of each noun.
var COCOPortuguese = NewTable("pt-BR", []Label{
	Fem("pessoa"),
	Fem("bicicleta"),
	Of("carro"),
	Fem("moto"),
	Of("avião"),
	Of("ônibus"),
	Of("trem"),
	Of("caminhão"),
	Of("barco"),
	Of("semáforo"),
	Of("hidrante"),
	Fem("placa de pare"),
	Of("parquímetro"),
	Of("banco"),
	Of("pássaro"),
	Of("gato"),
	Of("cachorro"),
	Of("cavalo"),
	Fem("ovelha"),
	Fem("vaca"),
	Of("elefante"),
	Of("urso"),
	Fem("zebra"),
	Fem("girafa"),
	Fem("mochila"),
	Of("guarda-chuva"),
	Fem("bolsa"),
	Fem("gravata"),
	Fem("mala"),
	Of("frisbee"),
	Of("esquis"),
	Of("snowboard"),
	Fem("bola esportiva"),
	Fem("pipa"),
	Of("taco de beisebol"),
	Fem("luva de beisebol"),
	Of("skate"),
	Fem("prancha de surfe"),
	Fem("raquete de tênis"),
	Fem("garrafa"),
	Fem("taça de vinho"),
	Of("copo"),
	Of("garfo"),
	Fem("faca"),
	Fem("colher"),
	Fem("tigela"),
	Fem("banana"),
	Fem("maçã"),
	Of("sanduíche"),
	Fem("laranja"),
	Of("brócolis"),
	Fem("cenoura"),
	Of("cachorro-quente"),
	Fem("pizza"),
	Of("donut"),
	Of("bolo"),
	Fem("cadeira"),
	Of("sofá"),
	Fem("planta em vaso"),
	Fem("cama"),
	Fem("mesa de jantar"),
	Of("vaso sanitário"),
	Fem("televisão"),
	Of("notebook"),
	Of("mouse"),
	Of("controle remoto"),
	Of("teclado"),
	Of("celular"),
	Of("micro-ondas"),
	Of("forno"),
	Fem("torradeira"),
	Fem("pia"),
	Fem("geladeira"),
	Of("livro"),
	Of("relógio"),
	Of("vaso"),
	Fem("tesoura"),
	Of("urso de pelúcia"),
	Of("secador de cabelo"),
	Fem("escova de dentes"),
})
