package typeinfo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Kind is the value kind of a table member.
type Kind uint8

// Member kinds.
const (
	KindString Kind = iota
	KindInteger
	KindDecimal
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// IsNumeric returns whether values of the kind are numbers.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindDecimal
}

// Check returns an error if value cannot be read as the kind.
// Empty values are accepted for every kind.
func (k Kind) Check(value string) error {
	if value == "" {
		return nil
	}

	var err error
	switch k {
	case KindString:
	case KindInteger:
		_, err = strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	case KindDecimal:
		_, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
	case KindBoolean:
		_, err = strconv.ParseBool(strings.TrimSpace(value))
	default:
		return fmt.Errorf("unknown kind %d", k)
	}
	if err != nil {
		return fmt.Errorf("%q is not a valid %s", value, k)
	}
	return nil
}

// ParseKind returns the kind with the given name, as returned by String.
func ParseKind(name string) (Kind, error) {
	for _, k := range []Kind{KindString, KindInteger, KindDecimal, KindBoolean} {
		if k.String() == strings.ToLower(name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("typeinfo: unknown kind %q", name)
}

// Member describes a column of a table type.
type Member struct {
	Name string
	Kind Kind
	// Width is the field width in runes, used by fixed-length formats.
	Width int
}

// TableType describes the structure of a table.
type TableType struct {
	Name    string
	Members []Member
}

// New returns a table type with string members of the given names.
func New(name string, members ...string) *TableType {
	tt := &TableType{Name: name}
	for _, m := range members {
		tt.Members = append(tt.Members, Member{Name: m})
	}
	return tt
}

// Member returns the member with the given name.
func (tt *TableType) Member(name string) (Member, bool) {
	for _, m := range tt.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Names returns the member names in order.
func (tt *TableType) Names() []string {
	names := make([]string, 0, len(tt.Members))
	for _, m := range tt.Members {
		names = append(names, m.Name)
	}
	return names
}

// Validate checks that all members have unique, non-empty names and a known kind.
func (tt *TableType) Validate() error {
	var result *multierror.Error

	seen := make(map[string]struct{}, len(tt.Members))
	for i, m := range tt.Members {
		switch {
		case m.Name == "":
			result = multierror.Append(result, fmt.Errorf("member %d has no name", i))
		case m.Kind > KindBoolean:
			result = multierror.Append(result, fmt.Errorf("member %s has unknown kind %d", m.Name, m.Kind))
		case m.Width < 0:
			result = multierror.Append(result, fmt.Errorf("member %s has negative width", m.Name))
		}
		if _, ok := seen[m.Name]; ok && m.Name != "" {
			result = multierror.Append(result, fmt.Errorf("member %s is defined twice", m.Name))
		}
		seen[m.Name] = struct{}{}
	}

	return result.ErrorOrNil()
}
