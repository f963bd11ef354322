package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Title:   "Alumnos",
		Columns: []string{"Nombre", "Apellido", "Carrera"},
		Rows: [][]string{
			{"Ana", "García", "Sistemas"},
			{"Bruno", "Díaz", "Civil"},
		},
	}
}

func TestRenderCSV(t *testing.T) {
	data, err := Render(FormatCSV, sampleTable())
	require.NoError(t, err)
	assert.Equal(t, "Nombre,Apellido,Carrera\nAna,García,Sistemas\nBruno,Díaz,Civil\n", string(data))
}

func TestRenderCSVPadsShortRows(t *testing.T) {
	table := sampleTable()
	table.Rows = [][]string{{"Ana"}}
	data, err := Render(FormatCSV, table)
	require.NoError(t, err)
	assert.Equal(t, "Nombre,Apellido,Carrera\nAna,,\n", string(data))
}

func TestRenderPDF(t *testing.T) {
	data, err := Render(FormatPDF, sampleTable())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderRejectsEmptyColumns(t *testing.T) {
	_, err := Render(FormatCSV, Table{})
	assert.Error(t, err)
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, err := Render(Format("xlsx"), sampleTable())
	assert.Error(t, err)
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, "csv", FormatCSV.Extension())
	assert.Equal(t, "pdf", FormatPDF.Extension())
}
