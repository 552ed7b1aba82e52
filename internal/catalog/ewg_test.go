package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Buckets(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name       string
		bucket     Bucket
		organicReq bool
	}{
		{"strawberries", BucketDirtyDozen, true},
		{"baby spinach", BucketDirtyDozen, true},
		{"bell pepper", BucketDirtyDozen, true},
		{"avocado", BucketCleanFifteen, false},
		{"yellow onion", BucketCleanFifteen, false},
		{"tomato", BucketMiddle, false},
		{"chicken thighs", BucketNonProduce, false},
		{"basmati rice", BucketNonProduce, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := c.Classify(tt.name)
			assert.Equal(t, tt.bucket, class.Bucket)
			assert.Equal(t, tt.organicReq, class.OrganicRequired)
		})
	}
}

func TestClassify_RankAndGuidance(t *testing.T) {
	c := NewClassifier()

	class := c.Classify("strawberries")
	assert.Equal(t, 1, class.Rank)
	assert.True(t, class.OrganicBeneficial)

	class = c.Classify("tomato")
	assert.True(t, class.OrganicBeneficial)

	class = c.Classify("avocado")
	assert.False(t, class.OrganicBeneficial)
}

func TestLoadClassifier(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ewg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- keyword: dragonfruit
  bucket: dirty_dozen
  rank: 1
`), 0o644))

	c, err := LoadClassifier(path)
	require.NoError(t, err)
	assert.Equal(t, BucketDirtyDozen, c.Classify("dragonfruit").Bucket)

	// The file replaces the built-in lists entirely.
	assert.Equal(t, BucketMiddle, c.Classify("strawberries").Bucket)
}

func TestLoadClassifier_Errors(t *testing.T) {
	_, err := LoadClassifier(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("[]"), 0o644))
	_, err = LoadClassifier(empty)
	assert.Error(t, err)
}
