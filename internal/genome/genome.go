// Package genome implements the continuous trait vector that governs a
// colony's growth, combat, social, sensing, survival and decision behavior,
// plus the algebra over it: random initialization from strategy archetypes,
// mutation (including hypermutation, radical mutation, and speciation-sized
// jumps), weighted distance, population-weighted merge, and horizontal gene
// transfer.
package genome

import (
	"math"
)

// Color is an RGB triple in [0,255].
type Color struct {
	R, G, B uint8
}

// Genome is the full continuous trait vector carried by a colony. Every
// scalar field is clamped to its documented range after every operation that
// touches it (RandomInit, Mutate, Merge, Transfer).
type Genome struct {
	// Growth
	SpreadRate          float64
	MutationRate        float64
	Metabolism          float64
	Efficiency          float64
	ResourceConsumption float64

	// Combat
	Aggression      float64
	Resilience      float64
	ToxinProduction float64
	ToxinResistance float64
	DefensePriority float64

	// Social
	DetectionRange   float64
	MaxTracked       int // [1,4]
	SocialFactor     float64 // [-1,1]
	MergeAffinity    float64
	SignalEmission   float64
	SignalSensitivity float64
	AlarmThreshold   float64
	GeneTransferRate float64

	// Environmental sensing
	NutrientSensitivity float64
	ToxinSensitivity    float64
	EdgeAffinity        float64 // [-1,1]
	DensityTolerance    float64
	QuorumThreshold     float64

	// Survival
	DormancyThreshold    float64
	DormancyResistance   float64
	SporulationThreshold float64
	BiofilmInvestment    float64
	BiofilmTendency      float64
	Motility             float64
	MotilityDirection    float64 // [0, 2pi)
	Specialization       float64

	// Decision layer
	HiddenWeights [8]float64 // each in [-1,1]
	LearningRate  float64
	MemoryFactor  float64

	// Spread: 8-connectivity preference weights, each in [0.7,1.0] nominally
	// but clamped to [0,1] by mutation.
	SpreadWeights [8]float64

	// Appearance
	BodyColor   Color
	BorderColor Color
}

// direction indices into SpreadWeights / DIR_WEIGHT (8-connectivity, N first,
// clockwise).
const (
	DirN = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
	NumDirections
)

// DirWeight is 1.0 for cardinal directions and 1/sqrt(2) for diagonals, per
// spec §4.6 step 1.
var DirWeight = [NumDirections]float64{
	DirN:  1.0,
	DirNE: 1 / math.Sqrt2,
	DirE:  1.0,
	DirSE: 1 / math.Sqrt2,
	DirS:  1.0,
	DirSW: 1 / math.Sqrt2,
	DirW:  1.0,
	DirNW: 1 / math.Sqrt2,
}

// DX, DY give the coordinate offset for each direction index.
var DX = [NumDirections]int{0, 1, 1, 1, 0, -1, -1, -1}
var DY = [NumDirections]int{-1, -1, 0, 1, 1, 1, 0, -1}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v float64) uint8 {
	return uint8(clamp(v, 0, 255))
}

// clampAll re-applies every trait's documented range. Called at the end of
// every operation that mutates a Genome, so no caller ever observes an
// out-of-range value.
func (g *Genome) clampAll() {
	g.SpreadRate = clamp(g.SpreadRate, 0, 1)
	g.MutationRate = clamp(g.MutationRate, 0, 1)
	g.Metabolism = clamp(g.Metabolism, 0, 1)
	g.Efficiency = clamp(g.Efficiency, 0, 1)
	g.ResourceConsumption = clamp(g.ResourceConsumption, 0, 1)

	g.Aggression = clamp(g.Aggression, 0, 1)
	g.Resilience = clamp(g.Resilience, 0, 1)
	g.ToxinProduction = clamp(g.ToxinProduction, 0, 1)
	g.ToxinResistance = clamp(g.ToxinResistance, 0, 1)
	g.DefensePriority = clamp(g.DefensePriority, 0, 1)

	g.DetectionRange = clamp(g.DetectionRange, 0, 1)
	g.MaxTracked = clampInt(g.MaxTracked, 1, 4)
	g.SocialFactor = clamp(g.SocialFactor, -1, 1)
	g.MergeAffinity = clamp(g.MergeAffinity, 0, 1)
	g.SignalEmission = clamp(g.SignalEmission, 0, 1)
	g.SignalSensitivity = clamp(g.SignalSensitivity, 0, 1)
	g.AlarmThreshold = clamp(g.AlarmThreshold, 0, 1)
	g.GeneTransferRate = clamp(g.GeneTransferRate, 0, 1)

	g.NutrientSensitivity = clamp(g.NutrientSensitivity, 0, 1)
	g.ToxinSensitivity = clamp(g.ToxinSensitivity, 0, 1)
	g.EdgeAffinity = clamp(g.EdgeAffinity, -1, 1)
	g.DensityTolerance = clamp(g.DensityTolerance, 0, 1)
	g.QuorumThreshold = clamp(g.QuorumThreshold, 0, 1)

	g.DormancyThreshold = clamp(g.DormancyThreshold, 0, 1)
	g.DormancyResistance = clamp(g.DormancyResistance, 0, 1)
	g.SporulationThreshold = clamp(g.SporulationThreshold, 0, 1)
	g.BiofilmInvestment = clamp(g.BiofilmInvestment, 0, 1)
	g.BiofilmTendency = clamp(g.BiofilmTendency, 0, 1)
	g.Motility = clamp(g.Motility, 0, 1)
	g.MotilityDirection = math.Mod(g.MotilityDirection, 2*math.Pi)
	if g.MotilityDirection < 0 {
		g.MotilityDirection += 2 * math.Pi
	}
	g.Specialization = clamp(g.Specialization, 0, 1)

	for i := range g.HiddenWeights {
		g.HiddenWeights[i] = clamp(g.HiddenWeights[i], -1, 1)
	}
	g.LearningRate = clamp(g.LearningRate, 0, 1)
	g.MemoryFactor = clamp(g.MemoryFactor, 0, 1)

	for i := range g.SpreadWeights {
		g.SpreadWeights[i] = clamp(g.SpreadWeights[i], 0, 1)
	}

	g.BorderColor = Color{g.BodyColor.R / 2, g.BodyColor.G / 2, g.BodyColor.B / 2}
}
