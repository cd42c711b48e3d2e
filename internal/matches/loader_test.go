package matches

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMatchTable(t *testing.T) {
	matches := ParseMatchTable("Name,Relationship\nJane Doe,2nd cousin\n")

	require.Len(t, matches, 1)
	assert.Equal(t, "Jane Doe", matches[0].NormalizedName)
	assert.Equal(t, "2nd cousin", matches[0].Get("relationship"))
	assert.Equal(t, "Jane Doe", matches[0].Get("name"))
}

func TestParse_AliasPriority(t *testing.T) {
	text := "Display Name, Match Name ,Shared cM\n" +
		"JD,Jane Doe,120\n" +
		"Only Display,,45\n" +
		",,10\n"

	matches := ParseMatchTable(text)

	require.Len(t, matches, 3)
	// "match name" outranks "display name".
	assert.Equal(t, "Jane Doe", matches[0].NormalizedName)
	assert.Equal(t, "Only Display", matches[1].NormalizedName)
	assert.Empty(t, matches[2].NormalizedName)
	assert.Empty(t, matches[2].DisplayName())
	assert.Equal(t, "120", matches[0].Get("shared cm"))
}

func TestParse_MissingAndExtraFields(t *testing.T) {
	text := "name,relationship,side\n" +
		"Jane Doe\n" +
		"John Roe,3rd cousin,paternal,unexpected\n"

	matches := ParseMatchTable(text)

	require.Len(t, matches, 2)
	assert.Equal(t, map[string]string{"name": "Jane Doe", "relationship": "", "side": ""}, matches[0].Fields)
	assert.Len(t, matches[1].Fields, 3)
	assert.Equal(t, "paternal", matches[1].Get("side"))
}

func TestParse_BlankLinesAndCRLF(t *testing.T) {
	text := "\r\n\r\nname,relationship\r\n\r\nJane Doe,2nd cousin\r\n\r\n"

	matches := ParseMatchTable(text)

	require.Len(t, matches, 1)
	assert.Equal(t, "2nd cousin", matches[0].Get("relationship"))
}

func TestParse_EmptyAndHeaderOnly(t *testing.T) {
	assert.NotNil(t, ParseMatchTable(""))
	assert.Empty(t, ParseMatchTable(""))
	assert.Empty(t, ParseMatchTable("name,relationship\n"))
}

func TestLoader_CustomDelimiterAndAliases(t *testing.T) {
	l := NewLoader(Options{Delimiter: ";", NameAliases: []string{"Kit Owner"}})

	matches := l.Parse("kit owner;name\nAda Lovelace;ignored\n")

	require.Len(t, matches, 1)
	assert.Equal(t, "Ada Lovelace", matches[0].NormalizedName)
}

func TestParse_QuotedDelimiterIsNotSpecial(t *testing.T) {
	matches := ParseMatchTable("name,relationship\n\"Doe, Jane\",2nd cousin\n")

	require.Len(t, matches, 1)
	assert.Equal(t, `"Doe`, matches[0].NormalizedName)
	assert.Equal(t, `Jane"`, matches[0].Get("relationship"))
}
