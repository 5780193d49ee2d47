package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgTextArrayRoundTrip(t *testing.T) {
	assert.Equal(t, "{}", pgTextArray(nil))
	assert.Equal(t, `{"2025-01","2025-02"}`, pgTextArray([]string{"2025-01", "2025-02"}))

	assert.Equal(t, []string{}, parseTextArray("{}"))
	assert.Equal(t, []string{"2025-01", "2025-02"}, parseTextArray(`{"2025-01","2025-02"}`))
	assert.Equal(t, []string{"2025-01", "2025-02"}, parseTextArray("{2025-01,2025-02}"))
}

func TestPgTextArrayEscaping(t *testing.T) {
	literal := pgTextArray([]string{`a"b`, `c\d`, "e f"})

	assert.Equal(t, `{"a\"b","c\\d","e f"}`, literal)
	assert.Equal(t, []string{`a"b`, `c\d`, "e f"}, parseTextArray(literal))
}

func TestPgJSONMap(t *testing.T) {
	assert.Equal(t, "{}", pgJSONMap(nil))
	assert.Equal(t, "{}", pgJSONMap(map[string]int{}))
	assert.Equal(t, `{"notas_fiscais":100}`, pgJSONMap(map[string]int{"notas_fiscais": 100}))
}
