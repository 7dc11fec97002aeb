package genome

import "github.com/wokuno/ferox/internal/rng"

// Archetype biases the trait means of a freshly generated genome toward a
// recognizable strategy before noise is added, per spec §4.3.
type Archetype int

const (
	Berserker Archetype = iota
	Turtle
	Swarm
	Toxic
	Hive
	Nomad
	Parasite
	Chaotic
	numArchetypes
)

// bias holds the mean each archetype nudges a handful of defining traits
// toward; every other trait is drawn from a neutral [0.3,0.7] band.
type bias struct {
	aggression, resilience, spreadRate, toxinProduction, mergeAffinity,
	motility, geneTransferRate, specialization float64
}

var archetypeBias = map[Archetype]bias{
	Berserker: {aggression: 0.85, resilience: 0.3, spreadRate: 0.6, toxinProduction: 0.3, mergeAffinity: 0.2, motility: 0.4, geneTransferRate: 0.3, specialization: 0.6},
	Turtle:    {aggression: 0.2, resilience: 0.85, spreadRate: 0.3, toxinProduction: 0.2, mergeAffinity: 0.4, motility: 0.15, geneTransferRate: 0.2, specialization: 0.3},
	Swarm:     {aggression: 0.4, resilience: 0.35, spreadRate: 0.85, toxinProduction: 0.2, mergeAffinity: 0.5, motility: 0.7, geneTransferRate: 0.4, specialization: 0.2},
	Toxic:     {aggression: 0.5, resilience: 0.4, spreadRate: 0.4, toxinProduction: 0.85, mergeAffinity: 0.25, motility: 0.3, geneTransferRate: 0.3, specialization: 0.5},
	Hive:      {aggression: 0.4, resilience: 0.5, spreadRate: 0.5, toxinProduction: 0.3, mergeAffinity: 0.85, motility: 0.3, geneTransferRate: 0.5, specialization: 0.4},
	Nomad:     {aggression: 0.35, resilience: 0.35, spreadRate: 0.65, toxinProduction: 0.2, mergeAffinity: 0.2, motility: 0.85, geneTransferRate: 0.3, specialization: 0.3},
	Parasite:  {aggression: 0.5, resilience: 0.3, spreadRate: 0.45, toxinProduction: 0.3, mergeAffinity: 0.3, motility: 0.4, geneTransferRate: 0.85, specialization: 0.45},
	Chaotic:   {aggression: 0.5, resilience: 0.5, spreadRate: 0.5, toxinProduction: 0.5, mergeAffinity: 0.5, motility: 0.5, geneTransferRate: 0.5, specialization: 0.85},
}

// noisy draws a value around mean with the given half-width, then clamps to
// [lo,hi].
func noisy(r rng.Source, mean, halfWidth, lo, hi float64) float64 {
	return clamp(mean+r.Uniform(-halfWidth, halfWidth), lo, hi)
}

// RandomInit generates a new genome, picking a random strategy archetype,
// biasing trait means accordingly, then adding noise, per spec §4.3.
func RandomInit(r rng.Source) Genome {
	arch := Archetype(r.Intn(int(numArchetypes)))
	return RandomInitArchetype(r, arch)
}

// RandomInitArchetype generates a new genome for a specific archetype; used
// by RandomInit and directly by tests/spawn logic that want a deterministic
// strategy.
func RandomInitArchetype(r rng.Source, arch Archetype) Genome {
	b := archetypeBias[arch]
	neutral := func() float64 { return noisy(r, 0.5, 0.2, 0, 1) }

	g := Genome{
		SpreadRate:          noisy(r, b.spreadRate, 0.15, 0, 1),
		MutationRate:        neutral(),
		Metabolism:          neutral(),
		Efficiency:          neutral(),
		ResourceConsumption: neutral(),

		Aggression:      noisy(r, b.aggression, 0.15, 0, 1),
		Resilience:      noisy(r, b.resilience, 0.15, 0, 1),
		ToxinProduction: noisy(r, b.toxinProduction, 0.15, 0, 1),
		ToxinResistance: neutral(),
		DefensePriority: neutral(),

		DetectionRange:    neutral(),
		MaxTracked:         1 + r.Intn(4),
		SocialFactor:       clamp(r.Uniform(-1, 1), -1, 1),
		MergeAffinity:      noisy(r, b.mergeAffinity, 0.15, 0, 1),
		SignalEmission:     neutral(),
		SignalSensitivity:  neutral(),
		AlarmThreshold:     neutral(),
		GeneTransferRate:   noisy(r, b.geneTransferRate, 0.15, 0, 1),

		NutrientSensitivity: neutral(),
		ToxinSensitivity:    neutral(),
		EdgeAffinity:        clamp(r.Uniform(-1, 1), -1, 1),
		DensityTolerance:    neutral(),
		QuorumThreshold:     neutral(),

		DormancyThreshold:    neutral(),
		DormancyResistance:   neutral(),
		SporulationThreshold: neutral(),
		BiofilmInvestment:    neutral(),
		BiofilmTendency:      neutral(),
		Motility:             noisy(r, b.motility, 0.15, 0, 1),
		MotilityDirection:    r.Uniform(0, 2*3.141592653589793),
		Specialization:       noisy(r, b.specialization, 0.15, 0, 1),

		LearningRate: noisy(r, 0.3, 0.15, 0, 1),
		MemoryFactor: neutral(),
	}

	for i := range g.HiddenWeights {
		g.HiddenWeights[i] = clamp(r.Uniform(-1, 1), -1, 1)
	}

	// Spread weights drawn near uniform in [0.7,1.0], with one or two
	// preferred directions boosted to ~[0.9,1.0].
	for i := range g.SpreadWeights {
		g.SpreadWeights[i] = r.Uniform(0.7, 1.0)
	}
	preferred := 1 + r.Intn(2) // one or two preferred directions
	chosen := map[int]bool{}
	for len(chosen) < preferred {
		chosen[r.Intn(NumDirections)] = true
	}
	for d := range chosen {
		g.SpreadWeights[d] = r.Uniform(0.9, 1.0)
	}

	g.BodyColor = randomBodyColor(r)
	g.clampAll() // also derives BorderColor
	return g
}

// randomBodyColor picks an RGB color via HSV with saturation in [0.7,1.0],
// value in [0.6,1.0], each channel floored at 30. HSV->RGB conversion is
// intentionally unexported: Ferox's public surface never exposes a general
// color-space helper (that belongs to the external renderer), it only needs
// one internally to synthesize genome appearance.
func randomBodyColor(r rng.Source) Color {
	hue := r.Uniform(0, 360)
	sat := r.Uniform(0.7, 1.0)
	val := r.Uniform(0.6, 1.0)
	c := hsvToRGB(hue, sat, val)
	c.R = floorChannel(c.R)
	c.G = floorChannel(c.G)
	c.B = floorChannel(c.B)
	return c
}

func floorChannel(v uint8) uint8 {
	if v < 30 {
		return 30
	}
	return v
}

// hsvToRGB converts hue in [0,360), saturation and value in [0,1] to an RGB
// triple. Unexported by design — see randomBodyColor.
func hsvToRGB(h, s, v float64) Color {
	c := v * s
	hp := h / 60
	x := c * (1 - abs(mod2(hp)-1))
	var rp, gp, bp float64
	switch {
	case hp < 1:
		rp, gp, bp = c, x, 0
	case hp < 2:
		rp, gp, bp = x, c, 0
	case hp < 3:
		rp, gp, bp = 0, c, x
	case hp < 4:
		rp, gp, bp = 0, x, c
	case hp < 5:
		rp, gp, bp = x, 0, c
	default:
		rp, gp, bp = c, 0, x
	}
	m := v - c
	return Color{
		R: toByte(rp + m),
		G: toByte(gp + m),
		B: toByte(bp + m),
	}
}

func mod2(x float64) float64 {
	for x >= 2 {
		x -= 2
	}
	return x
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func toByte(v float64) uint8 {
	return clampByte(v * 255)
}
