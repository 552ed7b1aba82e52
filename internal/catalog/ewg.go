package catalog

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Bucket is an EWG pesticide-residue classification bucket.
type Bucket string

const (
	BucketDirtyDozen   Bucket = "dirty_dozen"
	BucketMiddle       Bucket = "middle"
	BucketCleanFifteen Bucket = "clean_fifteen"
	BucketNonProduce   Bucket = "non_produce"
)

// Classification is the EWG guidance for one ingredient.
type Classification struct {
	Bucket            Bucket `yaml:"bucket" json:"bucket"`
	Rank              int    `yaml:"rank" json:"rank"`
	OrganicRequired   bool   `yaml:"organic_required" json:"organic_required"`
	OrganicBeneficial bool   `yaml:"organic_beneficial" json:"organic_beneficial"`
}

type ewgEntry struct {
	Keyword string `yaml:"keyword"`
	Bucket  Bucket `yaml:"bucket"`
	Rank    int    `yaml:"rank"`
}

// Classifier resolves ingredient names to EWG buckets through an ordered
// entry list: dirty-dozen entries first, then clean-fifteen, then the generic
// produce fallback to the middle bucket.
type Classifier struct {
	entries []ewgEntry
}

// defaultEntries follows the EWG shopper's guide lists. Rank is the position
// within the dirty-dozen list (1 = highest residue).
var defaultEntries = []ewgEntry{
	{Keyword: "strawberr", Bucket: BucketDirtyDozen, Rank: 1},
	{Keyword: "spinach", Bucket: BucketDirtyDozen, Rank: 2},
	{Keyword: "kale", Bucket: BucketDirtyDozen, Rank: 3},
	{Keyword: "collard", Bucket: BucketDirtyDozen, Rank: 3},
	{Keyword: "grape", Bucket: BucketDirtyDozen, Rank: 4},
	{Keyword: "peach", Bucket: BucketDirtyDozen, Rank: 5},
	{Keyword: "pear", Bucket: BucketDirtyDozen, Rank: 6},
	{Keyword: "nectarine", Bucket: BucketDirtyDozen, Rank: 7},
	{Keyword: "apple", Bucket: BucketDirtyDozen, Rank: 8},
	{Keyword: "bell pepper", Bucket: BucketDirtyDozen, Rank: 9},
	{Keyword: "hot pepper", Bucket: BucketDirtyDozen, Rank: 9},
	{Keyword: "cherr", Bucket: BucketDirtyDozen, Rank: 10},
	{Keyword: "blueberr", Bucket: BucketDirtyDozen, Rank: 11},
	{Keyword: "green bean", Bucket: BucketDirtyDozen, Rank: 12},

	{Keyword: "avocado", Bucket: BucketCleanFifteen, Rank: 1},
	{Keyword: "sweet corn", Bucket: BucketCleanFifteen, Rank: 2},
	{Keyword: "corn", Bucket: BucketCleanFifteen, Rank: 2},
	{Keyword: "pineapple", Bucket: BucketCleanFifteen, Rank: 3},
	{Keyword: "onion", Bucket: BucketCleanFifteen, Rank: 4},
	{Keyword: "papaya", Bucket: BucketCleanFifteen, Rank: 5},
	{Keyword: "sweet pea", Bucket: BucketCleanFifteen, Rank: 6},
	{Keyword: "asparagus", Bucket: BucketCleanFifteen, Rank: 7},
	{Keyword: "honeydew", Bucket: BucketCleanFifteen, Rank: 8},
	{Keyword: "kiwi", Bucket: BucketCleanFifteen, Rank: 9},
	{Keyword: "cabbage", Bucket: BucketCleanFifteen, Rank: 10},
	{Keyword: "mushroom", Bucket: BucketCleanFifteen, Rank: 11},
	{Keyword: "mango", Bucket: BucketCleanFifteen, Rank: 12},
	{Keyword: "sweet potato", Bucket: BucketCleanFifteen, Rank: 13},
	{Keyword: "watermelon", Bucket: BucketCleanFifteen, Rank: 14},
	{Keyword: "carrot", Bucket: BucketCleanFifteen, Rank: 15},
}

// NewClassifier returns a classifier backed by the built-in EWG lists.
func NewClassifier() *Classifier {
	return &Classifier{entries: defaultEntries}
}

// LoadClassifier reads EWG entries from a YAML file, for tuning without a
// rebuild. The file replaces the built-in lists entirely.
func LoadClassifier(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read ewg file %s", path)
	}
	var entries []ewgEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse ewg file %s", path)
	}
	if len(entries) == 0 {
		return nil, eris.Errorf("catalog: ewg file %s has no entries", path)
	}
	return &Classifier{entries: entries}, nil
}

// Classify returns the EWG guidance for an ingredient name. Produce with no
// explicit entry lands in the middle bucket; non-produce ingredients get the
// non-produce bucket.
func (c *Classifier) Classify(name string) Classification {
	n := strings.ToLower(name)
	for _, e := range c.entries {
		if strings.Contains(n, e.Keyword) {
			return Classification{
				Bucket:            e.Bucket,
				Rank:              e.Rank,
				OrganicRequired:   e.Bucket == BucketDirtyDozen,
				OrganicBeneficial: e.Bucket == BucketDirtyDozen || e.Bucket == BucketMiddle,
			}
		}
	}
	if CategoryOf(name) == CategoryProduce {
		return Classification{Bucket: BucketMiddle, OrganicBeneficial: true}
	}
	return Classification{Bucket: BucketNonProduce}
}
