package catalog

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func sampleRecords() []Record {
	return []Record{
		{Number: 1, Name: "Bulbasaur", Evolutions: []string{"Ivysaur"}, Labels: []string{"starter"}, CatchRate: intPtr(45), Rarity: Uncommon},
		{Number: 6, Name: "Charizard", PreEvolution: "Charmeleon", Rarity: UltraRare},
		{Number: 4, Name: "Charmander", Evolutions: []string{"Charmeleon"}, CatchRate: intPtr(45), Rarity: Rare},
		{Number: 25, Name: "Pikachu", Labels: []string{"Charged"}, CatchRate: intPtr(190), Rarity: Common},
		{Number: 5, Name: "Charmeleon", PreEvolution: "Charmander", Evolutions: []string{"Charizard"}, Rarity: Rare},
		{Number: 132, Name: "Ditto", Implemented: true, Rarity: UltraRare},
	}
}

func names(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestQueryFilterAndSortByName(t *testing.T) {
	got := Query(sampleRecords(), "char", SortName, true)
	assert.Equal(t, []string{"Charizard", "Charmander", "Charmeleon", "Pikachu"}, names(got))

	got = Query(sampleRecords(), "CHAR", SortName, false)
	assert.Equal(t, []string{"Pikachu", "Charmeleon", "Charmander", "Charizard"}, names(got))
}

func TestQueryMatchesEvolutionsAndLabels(t *testing.T) {
	assert.Equal(t, []string{"Bulbasaur"}, names(Query(sampleRecords(), "ivy", SortNumber, true)))
	assert.Equal(t, []string{"Bulbasaur"}, names(Query(sampleRecords(), "START", SortNumber, true)))
	assert.Empty(t, Query(sampleRecords(), "mewtwo", SortNumber, true))
}

func TestQueryEmptyTextKeepsEverything(t *testing.T) {
	got := Query(sampleRecords(), "", SortNumber, true)
	assert.Equal(t, []string{"Bulbasaur", "Charmander", "Charmeleon", "Charizard", "Pikachu", "Ditto"}, names(got))
}

func TestQueryIsPure(t *testing.T) {
	in := sampleRecords()
	before := sampleRecords()
	first := Query(in, "a", SortNumber, false)
	second := Query(in, "a", SortNumber, false)
	require.True(t, reflect.DeepEqual(in, before), "input slice must not be reordered")
	assert.Equal(t, first, second)
}

func TestQueryAbsentValuesCompareEqual(t *testing.T) {
	records := []Record{
		{Name: "NoRate"},
		{Name: "Rate", CatchRate: intPtr(5)},
	}
	assert.Equal(t, []string{"NoRate", "Rate"}, names(Query(records, "", SortCatchRate, true)))
	assert.Equal(t, []string{"NoRate", "Rate"}, names(Query(records, "", SortCatchRate, false)))

	got := Query(sampleRecords(), "", SortForm, true)
	assert.Equal(t, names(sampleRecords()), names(got), "no record has a form, so order is kept")
}

func TestQuerySortKeys(t *testing.T) {
	byRarity := Query(sampleRecords(), "", SortRarity, true)
	assert.Equal(t, "Pikachu", byRarity[0].Name)

	byImplemented := Query(sampleRecords(), "", SortImplemented, false)
	assert.Equal(t, "Ditto", byImplemented[0].Name)

	byInvalid := Query(sampleRecords(), "", SortKey(99), true)
	assert.Equal(t, "Bulbasaur", byInvalid[0].Name)
}

func TestToggleSort(t *testing.T) {
	v := DefaultView()
	assert.Equal(t, SortNumber, v.Sort)
	assert.True(t, v.Ascending)

	v = v.WithText("char").ToggleSort(SortName)
	assert.Equal(t, SortName, v.Sort)
	assert.True(t, v.Ascending)
	asc := v.Apply(sampleRecords())

	v = v.ToggleSort(SortName)
	assert.False(t, v.Ascending)
	assert.Equal(t, "desc", v.Order())
	desc := v.Apply(sampleRecords())

	assert.ElementsMatch(t, names(asc), names(desc), "toggling must not change membership")
	reversed := names(desc)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	assert.Equal(t, names(asc), reversed)

	v = v.ToggleSort(SortRarity)
	assert.Equal(t, SortRarity, v.Sort)
	assert.True(t, v.Ascending, "a new key resets to ascending")
}

func TestParseSortKey(t *testing.T) {
	tests := map[string]SortKey{
		"number":                SortNumber,
		"nationalPokedexNumber": SortNumber,
		"NAME":                  SortName,
		"catchRate":             SortCatchRate,
		"catch-rate":            SortCatchRate,
		"maleRatio":             SortMaleRatio,
		"rarity":                SortRarity,
		"spawns":                SortSpawns,
	}
	for in, want := range tests {
		got, err := ParseSortKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSortKey("weight")
	assert.Error(t, err)

	for _, k := range SortKeys() {
		parsed, err := ParseSortKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
}
