package legacy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runnersutah/pipetrack-api/internal/domain/legacy"
)

// TestParseGradeField_CamposCompletos: un grade compuesto típico del
// snapshot heredado se parte en sus cuatro campos.
func TestParseGradeField_CamposCompletos(t *testing.T) {
	parts := legacy.ParseGradeField("J-55, STC, R-3, New")
	assert.Equal(t, "J-55", parts.Grade)
	assert.Equal(t, "STC", parts.Coupling)
	assert.Equal(t, "R-3", parts.Range)
	assert.Equal(t, "New", parts.Condition)
	assert.Empty(t, parts.Remarks)
	assert.False(t, parts.NeedsReview())
}

// TestParseGradeField_SeparadoPorEspacios: sin comas se parte por espacios.
func TestParseGradeField_SeparadoPorEspacios(t *testing.T) {
	parts := legacy.ParseGradeField("L-80 BTC R2")
	assert.Equal(t, "L-80", parts.Grade)
	assert.Equal(t, "BTC", parts.Coupling)
	assert.Equal(t, "R2", parts.Range)
}

func TestParseGradeField_CondicionConSufijo(t *testing.T) {
	parts := legacy.ParseGradeField("P110, VAM, B-Condition")
	assert.Equal(t, "B", parts.Condition)
	assert.Equal(t, "P110", parts.Grade)
	assert.Equal(t, "VAM", parts.Coupling)
}

// TestParseGradeField_SobranteARemarks: lo que no coincide con ningún
// vocabulario cae en Remarks y marca el registro para revisión manual,
// nunca se rechaza ni se descarta en silencio.
func TestParseGradeField_SobranteARemarks(t *testing.T) {
	parts := legacy.ParseGradeField("J-55, EUE, 20ft marker joints")
	assert.Equal(t, "J-55", parts.Grade)
	assert.Equal(t, "EUE", parts.Coupling)
	assert.Equal(t, "20ft marker joints", parts.Remarks)
	assert.True(t, parts.NeedsReview())
}

func TestParseGradeField_Vacio(t *testing.T) {
	parts := legacy.ParseGradeField("")
	assert.Empty(t, parts.Grade)
	assert.Empty(t, parts.Remarks)
	assert.False(t, parts.NeedsReview())
}
