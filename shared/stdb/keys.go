package stdb

// KeyColumns returns the columns identifying a row: the declared primary key,
// or the first column when the schema declares none.
func KeyColumns(t TableInfo) []string {
	if len(t.PrimaryKey) > 0 {
		return t.PrimaryKey
	}
	if len(t.Columns) == 0 {
		return nil
	}
	return []string{t.Columns[0].Name}
}

// WhereForRow builds the where clause selecting row by its key columns. Key
// columns absent from the row are skipped.
func WhereForRow(t TableInfo, row map[string]any) (map[string]any, error) {
	where := map[string]any{}
	for _, key := range KeyColumns(t) {
		if v, ok := row[key]; ok {
			where[key] = v
		}
	}

	if len(where) == 0 {
		return nil, ErrNoPrimaryKey
	}
	return where, nil
}
