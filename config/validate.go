package config

import (
	"fmt"
	"math"
	"strconv"
)

type valueCache struct {
	stringVal string
	intVal    int64
	boolVal   bool
}

func validateValue(option *Option, value interface{}) (*valueCache, error) { //nolint:gocyclo
	switch v := value.(type) {
	case string:
		switch option.OptType {
		case OptTypeString:
		case OptTypeInt:
			// Allow numbers given as strings, eg. from flags or env.
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, newInvalidValueError(option.Key, v, "expected type int")
			}
			return validateValue(option, n)
		case OptTypeBool:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, newInvalidValueError(option.Key, v, "expected type bool")
			}
			return validateValue(option, b)
		default:
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type "+getTypeName(option.OptType))
		}
		if option.compiledRegex != nil {
			if !option.compiledRegex.MatchString(v) {
				return nil, newInvalidValueError(option.Key, v, "validation regex failed")
			}
		}
		return &valueCache{stringVal: v}, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, float32, float64:
		if option.OptType != OptTypeInt {
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type "+getTypeName(option.OptType))
		}
		var n int64
		switch nv := v.(type) {
		case int:
			n = int64(nv)
		case int8:
			n = int64(nv)
		case int16:
			n = int64(nv)
		case int32:
			n = int64(nv)
		case int64:
			n = nv
		case uint:
			n = int64(nv)
		case uint8:
			n = int64(nv)
		case uint16:
			n = int64(nv)
		case uint32:
			n = int64(nv)
		case float32:
			if nv != float32(math.Trunc(float64(nv))) {
				return nil, newInvalidValueError(option.Key, nv, "not an integer")
			}
			n = int64(nv)
		case float64:
			if nv != math.Trunc(nv) || nv > math.MaxInt64 || nv < math.MinInt64 {
				return nil, newInvalidValueError(option.Key, nv, "not an integer")
			}
			n = int64(nv)
		}
		if option.compiledRegex != nil {
			if !option.compiledRegex.MatchString(strconv.FormatInt(n, 10)) {
				return nil, newInvalidValueError(option.Key, n, "validation regex failed")
			}
		}
		return &valueCache{intVal: n}, nil
	case bool:
		if option.OptType != OptTypeBool {
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type "+getTypeName(option.OptType))
		}
		return &valueCache{boolVal: v}, nil
	default:
		return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "unsupported type")
	}
}
