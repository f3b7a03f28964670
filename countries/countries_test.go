package countries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func TestListFrench(t *testing.T) {
	list := List(language.French)
	require.NotEmpty(t, list)

	byCode := make(map[string]string, len(list))
	for _, c := range list {
		require.Len(t, c.Code, 3)
		require.NotEmpty(t, c.Name)
		_, dup := byCode[c.Code]
		require.False(t, dup, "duplicate code %s", c.Code)
		byCode[c.Code] = c.Name
	}

	assert.Equal(t, "France", byCode["FRA"])
	assert.Contains(t, byCode, "USA")
	assert.Contains(t, byCode, "DEU")

	col := collate.New(language.French)
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, col.CompareString(list[i-1].Name, list[i].Name), 0,
			"%q should sort before %q", list[i-1].Name, list[i].Name)
	}
}

func TestListStable(t *testing.T) {
	assert.Equal(t, List(language.French), List(language.French))
}
