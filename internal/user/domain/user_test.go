package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	named := User{FirstName: "Ann", Email: "ann@example.com"}
	assert.Equal(t, "Ann", named.DisplayName())

	anonymous := User{Email: "ann@example.com"}
	assert.Equal(t, "ann@example.com", anonymous.DisplayName())
}
