package rank

// Divisions within a tier, worst to best.
var Divisions = [4]string{"IV", "III", "II", "I"}

// topTierSpan is the synthetic rating width of the unbounded top tier, so
// that its divisions stay reachable.
const topTierSpan = 300.0

// Threshold is a single ladder entry: the tier name and the minimum rating
// held by competitors inside it.
type Threshold struct {
	Name string
	Min  float64
}

// Table lists the tiers from worst to best, strictly increasing by Min. The
// last tier has no upper bound.
var Table = []Threshold{
	{"Iron", 1000},
	{"Bronze", 1100},
	{"Silver", 1200},
	{"Gold", 1300},
	{"Platinum", 1400},
	{"Diamond", 1550},
	{"Challenger", 1700},
}

// colors maps tier names to display colors.
var colors = map[string]string{
	"Iron":       "#6b6b6b",
	"Bronze":     "#cd7f32",
	"Silver":     "#c0c0c0",
	"Gold":       "#ffd700",
	"Platinum":   "#2ee8c7",
	"Diamond":    "#4cc9ff",
	"Challenger": "#ffb86b",
}

const defaultColor = "#cccccc"

// Descriptor places a rating on the ladder: a named tier, a division within
// it, and the tier's display color.
type Descriptor struct {
	Tier     string `json:"tier"`
	Division string `json:"division"`
	Color    string `json:"color"`
}

// ForRating maps a numeric rating onto the ladder. Ratings below the lowest
// threshold clamp to the lowest division of the lowest tier; ratings above
// the top tier's synthetic span clamp to its highest division.
func ForRating(rating float64) Descriptor {
	idx := 0
	for i := range Table {
		if rating >= Table[i].Min {
			idx = i
		}
	}

	bucket := int(relativePosition(rating, idx) * 4)
	if bucket > len(Divisions)-1 {
		bucket = len(Divisions) - 1
	}

	return Descriptor{
		Tier:     Table[idx].Name,
		Division: Divisions[bucket],
		Color:    Color(Table[idx].Name),
	}
}

// relativePosition returns where the rating sits inside the tier at idx,
// clamped to [0, 1].
func relativePosition(rating float64, idx int) float64 {
	rel := (rating - Table[idx].Min) / SpanAt(idx)
	if rel < 0 {
		return 0
	}
	if rel > 1 {
		return 1
	}
	return rel
}

// SpanAt returns the rating width of the tier at idx.
func SpanAt(idx int) float64 {
	if idx+1 < len(Table) {
		return Table[idx+1].Min - Table[idx].Min
	}
	return topTierSpan
}

// TierIndex returns the table position of the named tier, or 0 when the name
// is unknown.
func TierIndex(name string) int {
	for i := range Table {
		if Table[i].Name == name {
			return i
		}
	}
	return 0
}

// DivisionIndex returns the position of a division label between 0 (the
// lowest, IV) and 3 (the highest, I). Unknown labels count as the lowest.
func DivisionIndex(label string) int {
	for i, d := range Divisions {
		if d == label {
			return i
		}
	}
	return 0
}

// Color returns the display color of the named tier, falling back to a
// neutral default for names outside the table.
func Color(name string) string {
	if c, ok := colors[name]; ok {
		return c
	}
	return defaultColor
}
