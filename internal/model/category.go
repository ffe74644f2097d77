package model

// Category buckets a symcla score into its lifestyle interpretation band.
type Category string

const (
	CategoryFreeLiving    Category = "free-living"
	CategoryHostAssoc     Category = "host-associated symbiont"
	CategoryIntracellular Category = "intracellular symbiont"
)

// Score band boundaries. Part of the documented output contract.
const (
	FreeLivingMax    = 0.42
	IntracellularMin = 1.21
)

// Categorize maps a continuous symcla score to its interpretation band.
func Categorize(score float64) Category {
	switch {
	case score <= FreeLivingMax:
		return CategoryFreeLiving
	case score >= IntracellularMin:
		return CategoryIntracellular
	default:
		return CategoryHostAssoc
	}
}
