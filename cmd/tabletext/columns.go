package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/safing/tabletext/typeinfo"
)

// parseColumns builds a table type from a column list in the form
// "name[:kind[:width]],...". Widths may also be given separately as a
// comma separated list, which overrides the widths of the column list.
func parseColumns(typeName, columns, widths string) (*typeinfo.TableType, error) {
	if columns == "" {
		if widths != "" {
			return nil, fmt.Errorf("widths given without columns")
		}
		return nil, nil //nolint:nilnil // tables without a type take their header from the input
	}

	tt := &typeinfo.TableType{Name: typeName}
	for _, column := range strings.Split(columns, ",") {
		parts := strings.Split(strings.TrimSpace(column), ":")
		if len(parts) > 3 {
			return nil, fmt.Errorf("invalid column definition %q", column)
		}

		m := typeinfo.Member{Name: parts[0]}
		if len(parts) > 1 && parts[1] != "" {
			kind, err := typeinfo.ParseKind(parts[1])
			if err != nil {
				return nil, err
			}
			m.Kind = kind
		}
		if len(parts) > 2 {
			width, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid width of column %s: %w", m.Name, err)
			}
			m.Width = width
		}
		tt.Members = append(tt.Members, m)
	}

	if widths != "" {
		list := strings.Split(widths, ",")
		if len(list) != len(tt.Members) {
			return nil, fmt.Errorf("got %d widths for %d columns", len(list), len(tt.Members))
		}
		for i, w := range list {
			width, err := strconv.Atoi(strings.TrimSpace(w))
			if err != nil {
				return nil, fmt.Errorf("invalid width of column %s: %w", tt.Members[i].Name, err)
			}
			tt.Members[i].Width = width
		}
	}

	if err := tt.Validate(); err != nil {
		return nil, err
	}
	return tt, nil
}
