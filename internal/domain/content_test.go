package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentEntry_Validate(t *testing.T) {
	assert.NoError(t, (&ContentEntry{ID: 1, Keyword: "Back pain"}).Validate())

	err := (&ContentEntry{ID: 0, Keyword: "x"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive")

	err = (&ContentEntry{ID: 2, Keyword: "  "}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyword")
}

func TestContentByID(t *testing.T) {
	idx := ContentByID([]ContentEntry{
		{ID: 1, Keyword: "a"},
		{ID: 2, Keyword: "b"},
		{ID: 1, Keyword: "c"},
	})
	assert.Len(t, idx, 2)
	assert.Equal(t, "c", idx[1].Keyword)
}

func TestLeadFilter_Matches(t *testing.T) {
	l := Lead{Name: "Asha Raman", Interest: "Back Pain"}
	assert.True(t, LeadFilter{}.Matches(l))
	assert.True(t, LeadFilter{Name: "asha"}.Matches(l))
	assert.True(t, LeadFilter{Interest: "pain"}.Matches(l))
	assert.False(t, LeadFilter{Name: "ravi"}.Matches(l))
	assert.False(t, LeadFilter{Name: "asha", Interest: "diabetes"}.Matches(l))
}

func TestCoalescePtrs(t *testing.T) {
	assert.Nil(t, CoalesceStrPtr(nil, nil))
	assert.Equal(t, "b", *CoalesceStrPtr(nil, Ptr("b"), Ptr("c")))
	assert.Equal(t, 7, *CoalesceIntPtr(nil, Ptr(7)))
	assert.Equal(t, "x", StrOr(nil, "x"))
	assert.Equal(t, "y", StrOr(Ptr("y"), "x"))
}
