// Package metrics computes classification scores over paired binary labels.
package metrics

import (
	"math"
	"sort"
)

// Confusion holds the cells of a binary confusion matrix.
type Confusion struct {
	TN, FP, FN, TP int
}

// NewConfusion tallies truth against predicted. Labels other than 1 count as
// the negative class. The slices must be the same length.
func NewConfusion(truth, predicted []int) Confusion {
	var c Confusion
	for i := range truth {
		switch {
		case truth[i] == 1 && predicted[i] == 1:
			c.TP++
		case truth[i] == 1:
			c.FN++
		case predicted[i] == 1:
			c.FP++
		default:
			c.TN++
		}
	}
	return c
}

// Accuracy is the fraction of pairs where truth equals predicted.
// Empty input yields NaN.
func Accuracy(truth, predicted []int) float64 {
	if len(truth) == 0 {
		return math.NaN()
	}
	hits := 0
	for i := range truth {
		if truth[i] == predicted[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(truth))
}

// FraudRecall is TP / (TP + FN), or 0 when there are no positive rows.
func FraudRecall(c Confusion) float64 {
	if c.TP+c.FN == 0 {
		return 0
	}
	return float64(c.TP) / float64(c.TP+c.FN)
}

// ROCAUC computes the area under the ROC curve of truth against scores using
// the rank statistic: the probability that a random positive outscores a
// random negative, with ties counting one half. For 0/1 scores this equals
// (1 + TPR - FPR) / 2. It returns NaN when truth holds a single class.
func ROCAUC(truth []int, scores []float64) float64 {
	type pair struct {
		score float64
		pos   bool
	}
	pairs := make([]pair, len(truth))
	var nPos, nNeg int
	for i, t := range truth {
		pairs[i] = pair{score: scores[i], pos: t == 1}
		if t == 1 {
			nPos++
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return math.NaN()
	}

	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })

	// Sum of average ranks held by positives.
	var rankSum float64
	for i := 0; i < len(pairs); {
		j := i
		for j < len(pairs) && pairs[j].score == pairs[i].score {
			j++
		}
		avgRank := float64(i+j+1) / 2 // ranks i+1..j
		for k := i; k < j; k++ {
			if pairs[k].pos {
				rankSum += avgRank
			}
		}
		i = j
	}

	u := rankSum - float64(nPos)*float64(nPos+1)/2
	return u / (float64(nPos) * float64(nNeg))
}

// BinaryROCAUC is ROCAUC with hard 0/1 predictions used as the scores.
func BinaryROCAUC(truth, predicted []int) float64 {
	scores := make([]float64, len(predicted))
	for i, p := range predicted {
		scores[i] = float64(p)
	}
	return ROCAUC(truth, scores)
}
