package domain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumberDeterministic(t *testing.T) {
	num, err := NewOrderNumber(bytes.NewReader([]byte{0, 1, 2, 3, 4, 5, 6, 7}))
	require.NoError(t, err)
	assert.Equal(t, "ORD-ABCDEFGH", num)
}

func TestNewOrderNumberShape(t *testing.T) {
	num, err := NewOrderNumber(bytes.NewReader([]byte{255, 254, 36, 35, 100, 0, 17, 200}))
	require.NoError(t, err)

	require.Len(t, num, len("ORD-")+8)
	assert.True(t, strings.HasPrefix(num, "ORD-"))
	for _, c := range num[len("ORD-"):] {
		assert.Contains(t, orderNumberAlphabet, string(c))
	}
}

func TestNewOrderNumberShortRandomSource(t *testing.T) {
	_, err := NewOrderNumber(bytes.NewReader([]byte{1, 2}))
	assert.Error(t, err)
}
