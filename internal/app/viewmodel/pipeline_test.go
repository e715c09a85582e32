package viewmodel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rawPerson struct {
	Name       string
	Email      *string
	Department string
	Status     string
}

type personView struct {
	Name       string
	Email      string
	Department string
	Status     string
}

func personDescriptor() Descriptor[rawPerson, personView] {
	return Descriptor[rawPerson, personView]{
		Project: func(r rawPerson) personView {
			email := "N/A"
			if r.Email != nil {
				email = *r.Email
			}
			return personView{Name: r.Name, Email: email, Department: r.Department, Status: r.Status}
		},
		Search: []func(personView) string{
			func(v personView) string { return v.Name },
			func(v personView) string { return v.Email },
			func(v personView) string { return v.Department },
		},
		Filters: map[string]Filter[personView]{
			"department": {Value: func(v personView) string { return v.Department }, Sentinel: "All Departments"},
			"status":     {Value: func(v personView) string { return v.Status }, Sentinel: "All Statuses"},
		},
	}
}

func email(s string) *string { return &s }

func samplePeople() []rawPerson {
	return []rawPerson{
		{Name: "Ada Lovelace", Email: email("ada@uni.edu"), Department: "Computer Science", Status: "active"},
		{Name: "Alan Turing", Email: nil, Department: "Computer Science", Status: "active"},
		{Name: "Marie Curie", Email: email("marie@uni.edu"), Department: "Physics", Status: "suspended"},
		{Name: "Emmy Noether", Email: email("emmy@uni.edu"), Department: "Mathematics", Status: "active"},
	}
}

func TestProjectionIsTotalOverMissingOptionals(t *testing.T) {
	rs := Apply(personDescriptor(), samplePeople(), State{})
	require.Len(t, rs.All, 4)
	assert.Equal(t, "N/A", rs.All[1].Email)
	assert.Equal(t, "ada@uni.edu", rs.All[0].Email)
}

func TestEmptyQueryRetainsAll(t *testing.T) {
	d := personDescriptor()
	people := samplePeople()

	empty := Apply(d, people, State{Query: ""})
	spaced := Apply(d, people, State{Query: "   "})

	assert.Equal(t, empty.Items, empty.All)
	assert.Equal(t, empty.Items, spaced.Items)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	d := personDescriptor()
	people := samplePeople()

	for _, q := range []string{"ada", "ADA", "Ada", "aDa"} {
		rs := Apply(d, people, State{Query: q})
		require.Len(t, rs.Items, 1, "query %q", q)
		assert.Equal(t, "Ada Lovelace", rs.Items[0].Name)
	}
}

func TestSearchMatchesAnySearchableField(t *testing.T) {
	rs := Apply(personDescriptor(), samplePeople(), State{Query: "physics"})
	require.Len(t, rs.Items, 1)
	assert.Equal(t, "Marie Curie", rs.Items[0].Name)
}

func TestFilterSentinelIsNoOp(t *testing.T) {
	d := personDescriptor()
	people := samplePeople()

	unfiltered := Apply(d, people, State{})
	tests := map[string]map[string]string{
		"sentinel value": {"department": "All Departments"},
		"empty value":    {"department": ""},
		"unknown key":    {"campus": "North"},
	}
	for name, selected := range tests {
		t.Run(name, func(t *testing.T) {
			rs := Apply(d, people, State{Selected: selected})
			assert.Equal(t, unfiltered.Items, rs.Items)
		})
	}
}

func TestFiltersCombineConjunctively(t *testing.T) {
	rs := Apply(personDescriptor(), samplePeople(), State{
		Selected: map[string]string{"department": "Computer Science", "status": "active"},
	})
	require.Len(t, rs.Items, 2)

	rs = Apply(personDescriptor(), samplePeople(), State{
		Selected: map[string]string{"department": "Physics", "status": "active"},
	})
	assert.Empty(t, rs.Items)
}

func TestAggregateScopesStayDistinct(t *testing.T) {
	// 50 students, 12 in Computer Science. Filtering must drive the
	// "showing" label while the dashboard scope stays at the full set.
	raw := make([]rawPerson, 0, 50)
	for i := 0; i < 50; i++ {
		dept := "History"
		if i < 12 {
			dept = "Computer Science"
		}
		raw = append(raw, rawPerson{Name: fmt.Sprintf("Student %02d", i), Department: dept, Status: "active"})
	}

	rs := Apply(personDescriptor(), raw, State{Selected: map[string]string{"department": "Computer Science"}})
	assert.Len(t, rs.Items, 12)
	assert.Len(t, rs.All, 50)
	assert.Equal(t, "Showing 12 of 50", Showing(len(rs.Items), len(rs.All)))

	// Dashboard aggregates over All are independent of the active filter.
	assert.Equal(t, 50, len(rs.All))
	assert.Equal(t, map[string]int{"Computer Science": 12, "History": 38}, CountBy(rs.All, func(v personView) string { return v.Department }))
}

func TestPipelinePreservesFetchOrder(t *testing.T) {
	rs := Apply(personDescriptor(), samplePeople(), State{Selected: map[string]string{"status": "active"}})
	require.Len(t, rs.Items, 3)
	assert.Equal(t, "Ada Lovelace", rs.Items[0].Name)
	assert.Equal(t, "Alan Turing", rs.Items[1].Name)
	assert.Equal(t, "Emmy Noether", rs.Items[2].Name)
}

func TestEmptyInputYieldsRenderableEmptyState(t *testing.T) {
	rs := Apply(personDescriptor(), nil, State{Query: "ada"})
	assert.Empty(t, rs.All)
	assert.Empty(t, rs.Items)
	assert.Equal(t, 0, Percent(len(rs.Items), len(rs.All)))
	assert.Equal(t, "Showing 0 of 0", Showing(0, 0))
}

func TestPercentRoundsToNearestInt(t *testing.T) {
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 100, Percent(5, 5))
	assert.Equal(t, 0, Percent(0, 7))
}

func TestSumBy(t *testing.T) {
	type fee struct{ cents int64 }
	fees := []fee{{1000}, {2550}, {0}}
	assert.Equal(t, int64(3550), SumBy(fees, func(f fee) int64 { return f.cents }))
}
