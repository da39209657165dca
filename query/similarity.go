package query

import (
	"math"

	"github.com/choragraph/chora/derive"
	"github.com/choragraph/chora/graph"
)

// PlaceSimilarity scores two emergent places in [0, 1]. Familiarity and
// affect each carry 0.3; encounter volume and meaning richness 0.2 each.
func PlaceSimilarity(a, b *derive.EmergentPlace) float64 {
	famSim := 1 - math.Abs(a.FamiliarityScore-b.FamiliarityScore)
	affectSim := 1 - math.Abs(a.AffectValenceMean-b.AffectValenceMean)/2

	var countSim float64
	switch {
	case a.EncounterCount > 0 && b.EncounterCount > 0:
		logRatio := math.Abs(math.Log(float64(a.EncounterCount)) - math.Log(float64(b.EncounterCount)))
		countSim = math.Max(0, 1-logRatio/3)
	case a.EncounterCount == b.EncounterCount:
		countSim = 1
	}

	meaningSim := 1.0
	if maxMeaning := max(a.MeaningCount, b.MeaningCount); maxMeaning > 0 {
		diff := math.Abs(float64(a.MeaningCount - b.MeaningCount))
		meaningSim = 1 - diff/float64(maxMeaning)
	}

	return 0.3*famSim + 0.3*affectSim + 0.2*countSim + 0.2*meaningSim
}

// PracticeSimilarity scores two practices in [0, 1]. Type identity carries
// 0.4, regularity proximity 0.3, and frequency ratio 0.3.
func PracticeSimilarity(a, b *graph.Practice) float64 {
	var typeSim float64
	if a.PracticeType == b.PracticeType {
		typeSim = 1
	}

	regSim := 1 - math.Abs(a.Regularity-b.Regularity)

	var freqSim float64
	if a.Frequency > 0 && b.Frequency > 0 {
		freqSim = math.Min(a.Frequency, b.Frequency) / math.Max(a.Frequency, b.Frequency)
	}

	return 0.4*typeSim + 0.3*regSim + 0.3*freqSim
}
