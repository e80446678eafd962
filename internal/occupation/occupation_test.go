package occupation

import "testing"

func TestHollandCode_OrdersByEmphasis(t *testing.T) {
	o := Occupation{Interests: map[string]float64{"R": 40, "I": 90, "A": 10, "S": 20, "E": 30, "C": 70}}
	got := o.HollandCode([]string{"R", "I", "A", "S", "E", "C"})
	if got != "ICR" {
		t.Errorf("HollandCode = %q, want ICR", got)
	}
}

func TestHollandCode_TiesKeepCanonicalOrder(t *testing.T) {
	o := Occupation{Interests: map[string]float64{"R": 50, "I": 50, "A": 50, "S": 50}}
	got := o.HollandCode([]string{"R", "I", "A", "S", "E", "C"})
	if got != "RIA" {
		t.Errorf("HollandCode = %q, want RIA", got)
	}
}

func TestHollandCode_FewerThanThree(t *testing.T) {
	o := Occupation{Interests: map[string]float64{"S": 80}}
	got := o.HollandCode([]string{"R", "I", "A", "S", "E", "C"})
	if got != "S" {
		t.Errorf("HollandCode = %q, want S", got)
	}
}
