package risk

import "testing"

func TestScoreCombinations(t *testing.T) {
	cases := []struct {
		name     string
		pep      bool
		sanction bool
		late     int
		want     int
	}{
		{"all clear", false, false, 0, 0},
		{"pep only", true, false, 0, 60},
		{"sanction only", false, true, 0, 40},
		{"pep and sanction", true, true, 0, 100},
		{"one late payment", false, false, 1, 10},
		{"two late payments", false, false, 2, 20},
		{"three late payments", false, false, 3, 30},
		{"late payments capped", false, false, 10, 30},
		{"sanction with many lates", false, true, 5, 70},
		{"everything clamped", true, true, 3, 100},
		{"pep with lates", true, false, 10, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inputs := map[string]any{
				"pep_flag":      tc.pep,
				"sanction_list": tc.sanction,
				"late_payments": tc.late,
			}
			if got := Score(inputs); got != tc.want {
				t.Fatalf("Score(%v) = %d, want %d", inputs, got, tc.want)
			}
		})
	}
}

func TestScoreDefensiveInputs(t *testing.T) {
	cases := []struct {
		name   string
		inputs map[string]any
		want   int
	}{
		{"nil map", nil, 0},
		{"empty map", map[string]any{}, 0},
		{"unknown keys ignored", map[string]any{"country": "CL", "notes": "ok"}, 0},
		{"json numbers", map[string]any{"late_payments": float64(2)}, 20},
		{"string flag truthy", map[string]any{"pep_flag": "yes"}, 60},
		{"string flag falsy", map[string]any{"pep_flag": ""}, 0},
		{"literal false string", map[string]any{"sanction_list": "false"}, 0},
		{"negative lates clamped to zero", map[string]any{"late_payments": -4}, 0},
		{"null flag", map[string]any{"pep_flag": nil}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.inputs); got != tc.want {
				t.Fatalf("Score(%v) = %d, want %d", tc.inputs, got, tc.want)
			}
		})
	}
}

func TestScoreIsPureAndIdempotent(t *testing.T) {
	inputs := map[string]any{"pep_flag": true, "late_payments": 2}
	first := Score(inputs)
	for i := 0; i < 5; i++ {
		if got := Score(inputs); got != first {
			t.Fatalf("score changed between calls: %d != %d", got, first)
		}
	}
	if inputs["late_payments"] != 2 {
		t.Fatal("Score mutated its input map")
	}
}
