package classifier

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// stratifiedSplit partitions row indices into train and test sets, drawing
// the test fraction from every label separately so rare crops appear on
// both sides. Classes are processed in sorted label order and shuffled
// with the seed, making the split a pure function of labels and seed.
func stratifiedSplit(labels []string, testFraction float64, seed int64) (train, test []int, err error) {
	byLabel := make(map[string][]int)
	for i, l := range labels {
		byLabel[l] = append(byLabel[l], i)
	}
	names := make([]string, 0, len(byLabel))
	for l := range byLabel {
		names = append(names, l)
	}
	sort.Strings(names)

	rng := rand.New(rand.NewSource(seed))
	for _, name := range names {
		idx := byLabel[name]
		if len(idx) < 2 {
			return nil, nil, fmt.Errorf("%w: crop %q has %d row(s)", ErrClassTooSmall, name, len(idx))
		}
		rng.Shuffle(len(idx), func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})

		n := int(math.Round(float64(len(idx)) * testFraction))
		if n < 1 {
			n = 1
		}
		if n >= len(idx) {
			n = len(idx) - 1
		}
		test = append(test, idx[:n]...)
		train = append(train, idx[n:]...)
	}

	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}
