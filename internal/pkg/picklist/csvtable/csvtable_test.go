package csvtable

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfpd/picklist-dependency/internal/pkg/picklist"
)

func TestRender(t *testing.T) {
	t.Parallel()
	table := picklist.DependencyTable{
		{ControllingValue: "Active", DependentValue: "Open"},
		{ControllingValue: "Inactive", DependentValue: "Closed"},
		{ControllingValue: "Pending", DependentValue: "Closed"},
	}

	out, err := Render(table, "Status", "SubStatus")
	require.NoError(t, err)
	assert.Equal(t, "Status,SubStatus\r\nActive,Open\r\nInactive,Closed\r\nPending,Closed", out)
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()
	out, err := Render(nil, "Status", "SubStatus")
	require.NoError(t, err)
	assert.Equal(t, "Status,SubStatus", out)
}

func TestRender_LF(t *testing.T) {
	t.Parallel()
	table := picklist.DependencyTable{{ControllingValue: "Active", DependentValue: "Open"}}
	out, err := Render(table, "Status", "SubStatus", WithLF())
	require.NoError(t, err)
	assert.Equal(t, "Status,SubStatus\nActive,Open", out)
}

func TestRender_Delimiter(t *testing.T) {
	t.Parallel()
	table := picklist.DependencyTable{{ControllingValue: "Active; maybe", DependentValue: "Open, soon"}}
	out, err := Render(table, "Status", "SubStatus", WithDelimiter(';'))
	require.NoError(t, err)
	assert.Equal(t, "Status;SubStatus\r\n\"Active; maybe\";Open, soon", out)
}

func TestRender_InvalidDelimiter(t *testing.T) {
	t.Parallel()
	for _, r := range []rune{'"', '\n', '\r', 0} {
		_, err := Render(nil, "Status", "SubStatus", WithDelimiter(r))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid CSV delimiter")
	}
}

func TestRender_Quoting(t *testing.T) {
	t.Parallel()
	table := picklist.DependencyTable{
		{ControllingValue: "A, B", DependentValue: "plain"},
		{ControllingValue: `say "hi"`, DependentValue: "line\nbreak"},
		{ControllingValue: "C", DependentValue: "carriage\rreturn"},
		{ControllingValue: "D", DependentValue: "no quotes"},
	}

	out, err := Render(table, "Status", "SubStatus")
	require.NoError(t, err)
	expected := "Status,SubStatus\r\n" +
		"\"A, B\",plain\r\n" +
		"\"say \"\"hi\"\"\",\"line\nbreak\"\r\n" +
		"C,\"carriage\rreturn\"\r\n" +
		"D,no quotes"
	assert.Equal(t, expected, out)
}

func TestRender_NoQuotingOfOtherValues(t *testing.T) {
	t.Parallel()
	table := picklist.DependencyTable{
		{ControllingValue: `\.`, DependentValue: " leading"},
		{ControllingValue: "trailing ", DependentValue: "\ttab"},
		{ControllingValue: "", DependentValue: "#1 'single'"},
	}

	out, err := Render(table, "Status", "SubStatus", WithLF())
	require.NoError(t, err)
	expected := "Status,SubStatus\n" +
		"\\., leading\n" +
		"trailing ,\ttab\n" +
		",#1 'single'"
	assert.Equal(t, expected, out)
}

func TestRender_KeepsTableOrder(t *testing.T) {
	t.Parallel()
	table := picklist.DependencyTable{
		{ControllingValue: "Z", DependentValue: "1"},
		{ControllingValue: "A", DependentValue: "2"},
	}
	out, err := Render(table, "C", "D", WithLF())
	require.NoError(t, err)
	assert.Equal(t, "C,D\nZ,1\nA,2", out)
}

func TestRender_RoundTrip(t *testing.T) {
	t.Parallel()
	vs := picklist.ValueSet{
		ControllingField: "Region",
		ValueSettings: []picklist.ValueSetting{
			{ValueName: "Prague, CZ", ControllingFieldValue: []string{"EU", "Central \"Europe\""}},
			{ValueName: "Boston", ControllingFieldValue: []string{"US"}},
			{ValueName: "Berlin", ControllingFieldValue: []string{"EU"}},
			{ValueName: " Oslo", ControllingFieldValue: []string{`\.`}},
		},
	}
	table := picklist.ExtractDependencies(vs)

	out, err := Render(table, "Region", "City")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, table.Len()+1)
	assert.Equal(t, []string{"Region", "City"}, records[0])
	assert.Equal(t, table.Rows(), records[1:])
}
