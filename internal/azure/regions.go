package azure

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed regions.yaml
var regionsYAML []byte

type regionTable struct {
	Pairs  [][]string        `yaml:"pairs"`
	OneWay map[string]string `yaml:"oneWay"`
}

var (
	pairsOnce sync.Once
	pairs     map[string]string
	pairsErr  error
)

func loadPairs() (map[string]string, error) {
	pairsOnce.Do(func() {
		var table regionTable
		if err := yaml.Unmarshal(regionsYAML, &table); err != nil {
			pairsErr = fmt.Errorf("failed to parse region pairs: %w", err)
			return
		}

		pairs = make(map[string]string)
		for _, p := range table.Pairs {
			if len(p) != 2 {
				pairsErr = fmt.Errorf("region pair %v must have exactly two regions", p)
				return
			}
			if _, ok := pairs[p[0]]; !ok {
				pairs[p[0]] = p[1]
			}
			// first declaration wins for regions paired with several others
			if _, ok := pairs[p[1]]; !ok {
				pairs[p[1]] = p[0]
			}
		}
		for from, to := range table.OneWay {
			pairs[from] = to
		}
	})
	return pairs, pairsErr
}

// PairedRegion returns the paired region of location.
func PairedRegion(location string) (string, bool) {
	table, err := loadPairs()
	if err != nil {
		return "", false
	}
	pair, ok := table[location]
	return pair, ok
}

// PairedRegions lists all regions that have a pair, sorted
func PairedRegions() []string {
	table, err := loadPairs()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(table))
	for r := range table {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
