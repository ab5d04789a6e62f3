package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOrderID(t *testing.T) {
	assert.True(t, ValidateOrderID("BK-123"))
	assert.True(t, ValidateOrderID("B1"))
	assert.False(t, ValidateOrderID(""))
	assert.False(t, ValidateOrderID("BK 123"))
	assert.False(t, ValidateOrderID("BK\n123"))
}

func TestValidateAmount(t *testing.T) {
	assert.True(t, ValidateAmount(150000))
	assert.True(t, ValidateAmount(0.5))
	assert.False(t, ValidateAmount(0))
	assert.False(t, ValidateAmount(-150000))
	assert.False(t, ValidateAmount(math.NaN()))
	assert.False(t, ValidateAmount(math.Inf(1)))
	assert.False(t, ValidateAmount(math.Inf(-1)))
}
