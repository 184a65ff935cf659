package risk

// Scoring weights. Contributions are additive and independent; the total is
// clamped to MaxScore.
const (
	pepWeight          = 60
	sanctionWeight     = 40
	latePaymentWeight  = 10
	latePaymentCeiling = 30

	// MaxScore is the upper bound of any computed score.
	MaxScore = 100
)

// Score maps free-form risk inputs to an integer in [0, MaxScore].
//
// Recognized keys: "pep_flag" (truthy adds 60), "sanction_list" (truthy adds
// 40) and "late_payments" (n adds min(n*10, 30)). Missing keys count as
// falsy/zero and unknown keys are ignored, so any JSON object is acceptable.
func Score(inputs map[string]any) int {
	score := 0
	if truthy(inputs["pep_flag"]) {
		score += pepWeight
	}
	if truthy(inputs["sanction_list"]) {
		score += sanctionWeight
	}
	late := intValue(inputs["late_payments"]) * latePaymentWeight
	if late > latePaymentCeiling {
		late = latePaymentCeiling
	}
	if late > 0 {
		score += late
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// truthy interprets a JSON-decoded value the way a loosely typed caller
// would: false, 0, "", "false" and nil are falsy, everything else is truthy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case string:
		return t != "" && t != "false" && t != "0"
	default:
		return true
	}
}

// intValue coerces a JSON-decoded numeric value to int, defaulting to 0.
// Negative counts are treated as 0.
func intValue(v any) int {
	var n int
	switch t := v.(type) {
	case float64:
		n = int(t)
	case int:
		n = t
	case int64:
		n = int(t)
	}
	if n < 0 {
		return 0
	}
	return n
}
