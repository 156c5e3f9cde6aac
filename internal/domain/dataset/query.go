package dataset

import (
	"fmt"
	"sort"
)

// Selection constrains one column to one value. A nil *Selection, or a
// Selection with a nil Value, means "no constraint".
type Selection struct {
	Column string
	Value  *string
}

// Select builds an active selection on column.
func Select(column, value string) Selection {
	return Selection{Column: column, Value: &value}
}

// Any builds an inactive selection on column.
func Any(column string) Selection {
	return Selection{Column: column}
}

// Active reports whether the selection constrains its column.
func (s Selection) Active() bool { return s.Value != nil }

// Filter returns the rows matching every active selection. With no active
// selection the result holds every row. The receiver is never modified.
func (t *Table) Filter(sels ...Selection) (*Table, error) {
	type cond struct {
		col int
		val string
	}
	conds := make([]cond, 0, len(sels))
	for _, s := range sels {
		if !s.Active() {
			continue
		}
		i, ok := t.index[s.Column]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, s.Column)
		}
		conds = append(conds, cond{col: i, val: *s.Value})
	}

	out, _ := New(t.columns...)
	for _, row := range t.rows {
		keep := true
		for _, c := range conds {
			if row[c.col].IsNull() || row[c.col].String() != c.val {
				keep = false
				break
			}
		}
		if keep {
			cp := make([]Value, len(row))
			copy(cp, row)
			out.rows = append(out.rows, cp)
		}
	}
	return out, nil
}

// FilterIn returns the rows whose column value is one of values.
func (t *Table) FilterIn(column string, values []string) (*Table, error) {
	i, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	out, _ := New(t.columns...)
	for _, row := range t.rows {
		if row[i].IsNull() {
			continue
		}
		if _, hit := set[row[i].String()]; hit {
			cp := make([]Value, len(row))
			copy(cp, row)
			out.rows = append(out.rows, cp)
		}
	}
	return out, nil
}

// Unique returns the distinct non-null values of column in first-seen order.
func (t *Table) Unique(column string) ([]string, error) {
	i, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	seen := make(map[string]struct{})
	var out []string
	for _, row := range t.rows {
		v := row[i]
		if v.IsNull() {
			continue
		}
		if _, dup := seen[v.String()]; dup {
			continue
		}
		seen[v.String()] = struct{}{}
		out = append(out, v.String())
	}
	return out, nil
}

// Strings returns the column as text, nulls as "".
func (t *Table) Strings(column string) ([]string, error) {
	i, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i].String()
	}
	return out, nil
}

// Floats returns the column parsed as numbers. Any null or non-numeric cell
// is an ErrNotNumeric error naming the row.
func (t *Table) Floats(column string) ([]float64, error) {
	i, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	out := make([]float64, len(t.rows))
	for r, row := range t.rows {
		f, ok := row[i].Float()
		if !ok {
			return nil, fmt.Errorf("%w: column %q row %d value %q", ErrNotNumeric, column, r, row[i].String())
		}
		out[r] = f
	}
	return out, nil
}

// GroupMean is one group of a GroupMeans result.
type GroupMean struct {
	Key  string
	Mean float64
}

// GroupMeans averages value per distinct key, groups sorted by key
// ascending. Rows with a null key are skipped.
func (t *Table) GroupMeans(key, value string) ([]GroupMean, error) {
	keys, err := t.Strings(key)
	if err != nil {
		return nil, err
	}
	vals, err := t.Floats(value)
	if err != nil {
		return nil, err
	}
	ki := t.index[key]
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for r, k := range keys {
		if t.rows[r][ki].IsNull() {
			continue
		}
		sums[k] += vals[r]
		counts[k]++
	}
	out := make([]GroupMean, 0, len(sums))
	for k, s := range sums {
		out = append(out, GroupMean{Key: k, Mean: s / float64(counts[k])})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key < out[b].Key })
	return out, nil
}

// MinMaxNormalize scales each column into [0, 1] over the rows of t:
// (x - min) / (max - min). A constant column scales to 0. The result maps
// column name to one value per row.
func (t *Table) MinMaxNormalize(columns []string) (map[string][]float64, error) {
	out := make(map[string][]float64, len(columns))
	for _, c := range columns {
		vals, err := t.Floats(c)
		if err != nil {
			return nil, err
		}
		scaled := make([]float64, len(vals))
		if len(vals) > 0 {
			lo, hi := vals[0], vals[0]
			for _, v := range vals[1:] {
				lo = min(lo, v)
				hi = max(hi, v)
			}
			span := hi - lo
			for i, v := range vals {
				if span == 0 {
					scaled[i] = 0
					continue
				}
				scaled[i] = (v - lo) / span
			}
		}
		out[c] = scaled
	}
	return out, nil
}

// Profile is the per-entity mean of normalized stats, in stat order.
type Profile struct {
	Key    string
	Values []float64
}

// NormalizedProfiles min-max scales stats over the rows of t and averages
// them per value of key, one Profile per entry of keys (in that order).
// Keys with no rows are returned with an empty Values slice.
func (t *Table) NormalizedProfiles(key string, keys, stats []string) ([]Profile, error) {
	if _, ok := t.index[key]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	norm, err := t.MinMaxNormalize(stats)
	if err != nil {
		return nil, err
	}
	ids, _ := t.Strings(key)

	out := make([]Profile, 0, len(keys))
	for _, k := range keys {
		p := Profile{Key: k}
		n := 0
		sums := make([]float64, len(stats))
		for r, id := range ids {
			if id != k {
				continue
			}
			n++
			for s, stat := range stats {
				sums[s] += norm[stat][r]
			}
		}
		if n > 0 {
			p.Values = make([]float64, len(stats))
			for s := range stats {
				p.Values[s] = sums[s] / float64(n)
			}
		}
		out = append(out, p)
	}
	return out, nil
}
