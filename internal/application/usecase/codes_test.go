package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextCode(t *testing.T) {
	assert.Equal(t, "MAT-001", nextCode("MAT", ""), "sin códigos previos arranca en 001")
	assert.Equal(t, "MAT-002", nextCode("MAT", "MAT-001"))
	assert.Equal(t, "SUP-100", nextCode("SUP", "SUP-099"))
	assert.Equal(t, "PRD-013", nextCode("PRD", "PRD-012"))
	// Un último código no secuencial (manual) no rompe: reinicia en 001.
	assert.Equal(t, "MAT-001", nextCode("MAT", "MAT-HARINA"))
}
