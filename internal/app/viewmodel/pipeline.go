// Package viewmodel turns one fetched collection into what a list page
// renders. Every list page shares the same four steps: project the raw
// records into display shapes, apply a case-insensitive text search, apply
// categorical filters, and derive summary numbers. The pipeline is pure and
// order-preserving; re-running it with the same inputs yields the same
// output.
package viewmodel

import "strings"

// Filter is one categorical criterion of a page. Value extracts the field
// the criterion compares against; Sentinel is the "All X" choice that makes
// the criterion a no-op.
type Filter[V any] struct {
	Value    func(V) string
	Sentinel string
}

// Descriptor parameterizes the pipeline for one entity: how a raw record
// becomes a view record, which fields the text search scans, and which
// categorical filters the page offers.
//
// Project must be total: a raw record missing optional fields yields a view
// record with the documented placeholder, never a panic.
type Descriptor[R, V any] struct {
	Project func(R) V
	Search  []func(V) string
	Filters map[string]Filter[V]
}

// State is the transient per-page filter state: the free-text query and the
// selected value per filter key. A missing key, an empty value or the
// filter's sentinel all mean "no restriction".
type State struct {
	Query    string
	Selected map[string]string
}

// Resultset is the pipeline output. All is the full projected set in fetch
// order; Items is the subset retained by search and filters, in the same
// order. Dashboard cards aggregate over All, "showing X of Y" style labels
// over Items — the two scopes are deliberately kept apart.
type Resultset[V any] struct {
	All   []V
	Items []V
}

// Apply runs the pipeline over one fetched collection.
func Apply[R, V any](d Descriptor[R, V], raw []R, st State) Resultset[V] {
	all := make([]V, 0, len(raw))
	for _, r := range raw {
		all = append(all, d.Project(r))
	}

	items := make([]V, 0, len(all))
	for _, v := range all {
		if matchesQuery(d, v, st.Query) && matchesFilters(d, v, st.Selected) {
			items = append(items, v)
		}
	}

	return Resultset[V]{All: all, Items: items}
}

// matchesQuery retains v when at least one search field contains the query
// as a case-insensitive substring. The empty query retains everything.
func matchesQuery[R, V any](d Descriptor[R, V], v V, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	for _, field := range d.Search {
		if strings.Contains(strings.ToLower(field(v)), needle) {
			return true
		}
	}
	return false
}

// matchesFilters retains v when every active filter key matches exactly.
func matchesFilters[R, V any](d Descriptor[R, V], v V, selected map[string]string) bool {
	for key, want := range selected {
		f, ok := d.Filters[key]
		if !ok {
			continue
		}
		if want == "" || want == f.Sentinel {
			continue
		}
		if f.Value(v) != want {
			return false
		}
	}
	return true
}
