package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim and lower", input: "  Bonjour MollySou ", want: "bonjour mollysou"},
		{name: "decomposed accent", input: "Ve\u0302tements", want: "v\u00eatements"},
		{name: "uppercase accent", input: "ÉLECTRONIQUE", want: "électronique"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}

func TestContainsAny(t *testing.T) {
	keyword, ok := ContainsAny("je veux une robe rouge", []string{"jean", "robe", "rouge"})
	assert.True(t, ok)
	assert.Equal(t, "robe", keyword)

	_, ok = ContainsAny("rien à voir", []string{"jean", "robe"})
	assert.False(t, ok)

	_, ok = ContainsAny("", nil)
	assert.False(t, ok)
}

func TestRuneLen(t *testing.T) {
	assert.Equal(t, 1, RuneLen("é"))
	assert.Equal(t, 0, RuneLen(""))
	assert.Equal(t, 4, RuneLen("bébé"))
}

func TestLimit(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2, 3}, Limit(items, 3))
	assert.Equal(t, items, Limit(items, 10))
	assert.Empty(t, Limit(items, 0))
	assert.Nil(t, Limit[int](nil, 4))
}
