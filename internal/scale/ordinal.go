package scale

// Tableau10 is the categorical palette used for line types
var Tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// Ordinal assigns palette entries to keys in first-seen order, cycling when
// the palette runs out. Assignments are stable for the scale's lifetime.
type Ordinal struct {
	palette []string
	index   map[string]int
	order   []string
}

// NewOrdinal creates an ordinal scale over palette
func NewOrdinal(palette []string) *Ordinal {
	if len(palette) == 0 {
		palette = Tableau10
	}
	return &Ordinal{palette: palette, index: make(map[string]int)}
}

// Map returns the color for key
func (o *Ordinal) Map(key string) string {
	i, ok := o.index[key]
	if !ok {
		i = len(o.order)
		o.index[key] = i
		o.order = append(o.order, key)
	}
	return o.palette[i%len(o.palette)]
}

// Domain returns keys in the order they were first mapped
func (o *Ordinal) Domain() []string {
	return append([]string(nil), o.order...)
}
