package dex

// Damage multiplier tokens as they appear in the damage taken table.
const (
	MULTIPLIER_FOUR    = "*4"
	MULTIPLIER_TWO     = "*2"
	MULTIPLIER_ONE     = "*1"
	MULTIPLIER_HALF    = "*0.5"
	MULTIPLIER_QUARTER = "*0.25"
)

// DamageProfile buckets type icon paths by the multiplier of the damage received
// from that type. ResistedDamage takes every multiplier that is not one of the
// others, including immunities.
type DamageProfile struct {
	FourTimesWeakness []string `json:"fourTimesWeakness"`
	TwoTimesWeakness  []string `json:"twoTimesWeakness"`
	NeutralWeakness   []string `json:"neutralWeakness"`
	HalfDamage        []string `json:"halfDamage"`
	QuarterDamage     []string `json:"quarterDamage"`
	ResistedDamage    []string `json:"resistedDamage"`
}

func NewDamageProfile() *DamageProfile {
	return &DamageProfile{
		FourTimesWeakness: []string{},
		TwoTimesWeakness:  []string{},
		NeutralWeakness:   []string{},
		HalfDamage:        []string{},
		QuarterDamage:     []string{},
		ResistedDamage:    []string{},
	}
}

// Add puts `icon` in the bucket for `multiplier`.
func (d *DamageProfile) Add(icon, multiplier string) {
	switch multiplier {
	case MULTIPLIER_FOUR:
		d.FourTimesWeakness = append(d.FourTimesWeakness, icon)
	case MULTIPLIER_TWO:
		d.TwoTimesWeakness = append(d.TwoTimesWeakness, icon)
	case MULTIPLIER_ONE:
		d.NeutralWeakness = append(d.NeutralWeakness, icon)
	case MULTIPLIER_HALF:
		d.HalfDamage = append(d.HalfDamage, icon)
	case MULTIPLIER_QUARTER:
		d.QuarterDamage = append(d.QuarterDamage, icon)
	default:
		d.ResistedDamage = append(d.ResistedDamage, icon)
	}
}

// Buckets returns the buckets in the order they are persisted.
func (d *DamageProfile) Buckets() [][]string {
	return [][]string{
		d.FourTimesWeakness,
		d.TwoTimesWeakness,
		d.NeutralWeakness,
		d.HalfDamage,
		d.QuarterDamage,
		d.ResistedDamage,
	}
}

// Len is the amount of types across all buckets.
func (d *DamageProfile) Len() int {
	n := 0
	for _, bucket := range d.Buckets() {
		n += len(bucket)
	}
	return n
}
