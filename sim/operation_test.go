package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromLetter_AllComponentLetters(t *testing.T) {
	want := map[byte]OpKind{
		'S': KindSystem, 'P': KindCompute, 'A': KindAppBoundary,
		'M': KindMemory, 'I': KindInput, 'O': KindOutput,
	}
	for letter, kind := range want {
		got, ok := KindFromLetter(letter)
		assert.True(t, ok, "letter %c", letter)
		assert.Equal(t, kind, got)
		assert.Equal(t, letter, got.Letter())
	}

	_, ok := KindFromLetter('X')
	assert.False(t, ok)
}

func TestOperation_String_RendersScriptForm(t *testing.T) {
	assert.Equal(t, "I(hard drive)6", input("hard drive", 6).String())
	assert.Equal(t, "M(allocate)5090", allocate(5090).String())
}

func TestNewOperationCatalog_CopiesInput(t *testing.T) {
	// GIVEN a slice used to build a catalog
	ops := []Operation{appStart(), run(3), appEnd()}
	catalog := NewOperationCatalog(ops)

	// WHEN the caller mutates its slice afterwards
	ops[1] = run(99)

	// THEN the catalog is unaffected
	op, ok := catalog.At(1)
	assert.True(t, ok)
	assert.Equal(t, 3, op.Cycles)
}

func TestOperationCatalog_NilAndBounds(t *testing.T) {
	var nilCatalog *OperationCatalog
	assert.Equal(t, 0, nilCatalog.Len())
	_, ok := nilCatalog.At(0)
	assert.False(t, ok)

	catalog := program([]Operation{run(1)})
	_, ok = catalog.At(-1)
	assert.False(t, ok)
	_, ok = catalog.At(catalog.Len())
	assert.False(t, ok)
}

func TestOperationCatalog_CountProcessStarts(t *testing.T) {
	catalog := program([]Operation{run(1)}, nil, []Operation{input("keyboard", 2)})
	assert.Equal(t, 3, catalog.CountProcessStarts())
}
