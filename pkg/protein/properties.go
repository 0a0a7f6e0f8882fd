package protein

import "math"

// Average masses of the free amino acids, in daltons.
var residueMasses = map[rune]float64{
	'A': 89.09, 'R': 174.20, 'N': 132.12, 'D': 133.10, 'C': 121.16,
	'Q': 146.15, 'E': 147.13, 'G': 75.07, 'H': 155.16, 'I': 131.17,
	'L': 131.17, 'K': 146.19, 'M': 149.21, 'F': 165.19, 'P': 115.13,
	'S': 105.09, 'T': 119.12, 'W': 204.23, 'Y': 181.19, 'V': 117.15,
}

// Properties holds basic sequence-derived protein characteristics.
// The isoelectric point is a crude charged-residue estimate, not a
// Henderson-Hasselbalch titration.
type Properties struct {
	Length           int            `json:"length"`
	MolecularWeight  float64        `json:"molecular_weight"`
	IsoelectricPoint float64        `json:"isoelectric_point"`
	Composition      map[string]int `json:"composition"`
}

// Calculate derives the properties of a normalized sequence.
func Calculate(sequence string) *Properties {
	composition := make(map[string]int)
	var weight float64

	for _, r := range sequence {
		composition[string(r)]++
		weight += residueMasses[r]
	}

	basic := composition["R"] + composition["K"] + composition["H"]
	acidic := composition["D"] + composition["E"]

	point := 7.0 + 0.1*float64(basic-acidic)
	point = math.Max(1.0, math.Min(14.0, point))

	return &Properties{
		Length:           len(sequence),
		MolecularWeight:  round(weight),
		IsoelectricPoint: round(point),
		Composition:      composition,
	}
}

func round(value float64) float64 {
	return math.Round(value*100) / 100
}
