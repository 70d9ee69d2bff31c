package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfusion(t *testing.T) {
	truth := []int{0, 0, 1, 1, 1, 0}
	pred := []int{0, 1, 1, 0, 1, 0}

	got := NewConfusion(truth, pred)
	assert.Equal(t, Confusion{TN: 2, FP: 1, FN: 1, TP: 2}, got)
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name  string
		truth []int
		pred  []int
		want  float64
	}{
		{"perfect", []int{0, 1, 0}, []int{0, 1, 0}, 1.0},
		{"half", []int{0, 1, 0, 1}, []int{0, 0, 1, 1}, 0.5},
		{"none", []int{1, 1}, []int{0, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Accuracy(tt.truth, tt.pred), 1e-12)
		})
	}
}

func TestAccuracy_Empty(t *testing.T) {
	assert.True(t, math.IsNaN(Accuracy(nil, nil)))
}

func TestFraudRecall(t *testing.T) {
	tests := []struct {
		name string
		c    Confusion
		want float64
	}{
		{"all caught", Confusion{TP: 4}, 1.0},
		{"none caught", Confusion{FN: 1, TN: 1}, 0.0},
		{"partial", Confusion{TP: 1, FN: 3}, 0.25},
		{"no fraud present", Confusion{TN: 5, FP: 2}, 0.0},
		{"empty", Confusion{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FraudRecall(tt.c)
			assert.False(t, math.IsNaN(got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinaryROCAUC(t *testing.T) {
	tests := []struct {
		name  string
		truth []int
		pred  []int
		want  float64
	}{
		{"perfect", []int{0, 1, 0, 1}, []int{0, 1, 0, 1}, 1.0},
		{"inverted", []int{0, 1, 0, 1}, []int{1, 0, 1, 0}, 0.0},
		{"constant prediction", []int{0, 1}, []int{0, 0}, 0.5},
		// TPR = 1/2, FPR = 1/3.
		{"mixed", []int{1, 1, 0, 0, 0}, []int{1, 0, 1, 0, 0}, (1 + 0.5 - 1.0/3) / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BinaryROCAUC(tt.truth, tt.pred), 1e-12)
		})
	}
}

func TestBinaryROCAUC_MatchesBalancedAccuracy(t *testing.T) {
	truth := []int{1, 0, 1, 1, 0, 0, 0, 1, 0, 0}
	pred := []int{1, 0, 0, 1, 1, 0, 0, 1, 0, 1}

	c := NewConfusion(truth, pred)
	tpr := float64(c.TP) / float64(c.TP+c.FN)
	fpr := float64(c.FP) / float64(c.FP+c.TN)

	assert.InDelta(t, (1+tpr-fpr)/2, BinaryROCAUC(truth, pred), 1e-12)
}

func TestROCAUC_Scores(t *testing.T) {
	// Classic example: one positive ranked below one negative.
	truth := []int{0, 0, 1, 1}
	scores := []float64{0.1, 0.4, 0.35, 0.8}
	assert.InDelta(t, 0.75, ROCAUC(truth, scores), 1e-12)
}

func TestROCAUC_SingleClass(t *testing.T) {
	assert.True(t, math.IsNaN(BinaryROCAUC([]int{0, 0, 0}, []int{0, 1, 0})))
	assert.True(t, math.IsNaN(BinaryROCAUC([]int{1}, []int{1})))
	assert.True(t, math.IsNaN(BinaryROCAUC(nil, nil)))
}
