package analytics

// MaxReliableReps is the rep ceiling for 1RM estimation. The Epley formula
// degrades badly for high-rep sets, so anything above this is reported as
// "no estimate" rather than a misleading number.
const MaxReliableReps = 15

// EstimateOneRepMax estimates a one-rep max from a single set using the
// Epley formula: weight × (1 + reps/30).
//
// ok is false when the set cannot produce a reliable estimate: weight <= 0,
// reps < 1, or reps > MaxReliableReps. Callers must exclude such sets from
// 1RM series — ok=false is "no data point", never zero.
func EstimateOneRepMax(weight float64, reps int) (estimate float64, ok bool) {
	if weight <= 0 || reps < 1 || reps > MaxReliableReps {
		return 0, false
	}
	return weight * (1 + float64(reps)/30), true
}
