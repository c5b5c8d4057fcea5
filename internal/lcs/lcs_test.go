package lcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sublee/patchgen/internal/lcs"
)

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, "pre", lcs.CommonPrefix("prefix", "present"))
	assert.Equal(t, "hel", lcs.CommonPrefix("hello", "hel"))
	assert.Equal(t, "", lcs.CommonPrefix("", "feel"))
	assert.Equal(t, "", lcs.CommonPrefix("dependency", "feel"))
}

func TestCommonPrefixUnicode(t *testing.T) {
	assert.Equal(t, "안녕", lcs.CommonPrefix("안녕하세요", "안녕히"))
	// "가" and "각" share leading bytes but not a rune.
	assert.Equal(t, "", lcs.CommonPrefix("가", "각"))
}

func TestCommonSuffix(t *testing.T) {
	assert.Equal(t, "alking", lcs.CommonSuffix("walking", "talking"))
	assert.Equal(t, "lo", lcs.CommonSuffix("hello", "lo"))
	assert.Equal(t, "", lcs.CommonSuffix("feel", ""))
	assert.Equal(t, "", lcs.CommonSuffix("dependency", "feel"))
}

func TestCommonSuffixUnicode(t *testing.T) {
	assert.Equal(t, "세요", lcs.CommonSuffix("안녕하세요", "세요"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 2, lcs.Similarity("nmae", "name"))
	assert.Equal(t, 4, lcs.Similarity("attrs", "attr"))
	assert.Equal(t, 4, lcs.Similarity("attr", "attr"))
	assert.Equal(t, 2, lcs.Similarity("form", "from"))
	// "aa" and "aaa": the prefix covers "aa" so the suffix must not count it again.
	assert.Equal(t, 2, lcs.Similarity("aa", "aaa"))
}

func TestClosest(t *testing.T) {
	keys := []string{"name", "attr", "from"}

	got, ok := lcs.Closest("nmae", keys)
	assert.True(t, ok)
	assert.Equal(t, "name", got)

	got, ok = lcs.Closest("attrs", keys)
	assert.True(t, ok)
	assert.Equal(t, "attr", got)

	_, ok = lcs.Closest("zzz", keys)
	assert.False(t, ok)

	_, ok = lcs.Closest("with", keys)
	assert.False(t, ok)
}
