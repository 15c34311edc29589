package classifier

import (
	"fmt"
	"strings"
)

// ClassMetrics scores one class on the held-out rows.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report is the evaluation of a trained model on its test split.
type Report struct {
	Accuracy    float64
	Classes     []string
	PerClass    map[string]ClassMetrics
	MacroAvg    ClassMetrics
	WeightedAvg ClassMetrics
}

func buildReport(enc *LabelEncoder, actual, predicted []int) *Report {
	n := enc.Len()
	truePos := make([]int, n)
	actualCount := make([]int, n)
	predictedCount := make([]int, n)

	correct := 0
	for i := range actual {
		actualCount[actual[i]]++
		predictedCount[predicted[i]]++
		if actual[i] == predicted[i] {
			truePos[actual[i]]++
			correct++
		}
	}

	r := &Report{
		Classes:  enc.Classes(),
		PerClass: make(map[string]ClassMetrics, n),
	}
	if len(actual) > 0 {
		r.Accuracy = float64(correct) / float64(len(actual))
	}

	total := len(actual)
	for code, name := range r.Classes {
		m := ClassMetrics{Support: actualCount[code]}
		if predictedCount[code] > 0 {
			m.Precision = float64(truePos[code]) / float64(predictedCount[code])
		}
		if actualCount[code] > 0 {
			m.Recall = float64(truePos[code]) / float64(actualCount[code])
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.PerClass[name] = m

		r.MacroAvg.Precision += m.Precision / float64(n)
		r.MacroAvg.Recall += m.Recall / float64(n)
		r.MacroAvg.F1 += m.F1 / float64(n)
		if total > 0 {
			w := float64(m.Support) / float64(total)
			r.WeightedAvg.Precision += m.Precision * w
			r.WeightedAvg.Recall += m.Recall * w
			r.WeightedAvg.F1 += m.F1 * w
		}
	}
	r.MacroAvg.Support = total
	r.WeightedAvg.Support = total
	return r
}

// String renders the report as a per-class table with accuracy and
// averages underneath.
func (r *Report) String() string {
	width := len("weighted avg")
	for _, c := range r.Classes {
		if len(c) > width {
			width = len(c)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%*s  %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")
	for _, c := range r.Classes {
		m := r.PerClass[c]
		fmt.Fprintf(&b, "%*s  %9.2f %9.2f %9.2f %9d\n", width, c, m.Precision, m.Recall, m.F1, m.Support)
	}
	fmt.Fprintf(&b, "\n%*s  %9s %9s %9.2f %9d\n", width, "accuracy", "", "", r.Accuracy, r.MacroAvg.Support)
	fmt.Fprintf(&b, "%*s  %9.2f %9.2f %9.2f %9d\n", width, "macro avg", r.MacroAvg.Precision, r.MacroAvg.Recall, r.MacroAvg.F1, r.MacroAvg.Support)
	fmt.Fprintf(&b, "%*s  %9.2f %9.2f %9.2f %9d\n", width, "weighted avg", r.WeightedAvg.Precision, r.WeightedAvg.Recall, r.WeightedAvg.F1, r.WeightedAvg.Support)
	return b.String()
}
