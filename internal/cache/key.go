package cache

import (
	"fmt"
	"strconv"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// Key builds a cache key from an operation name and its parameters.
// Strings are quoted so that parameters containing the separator can not
// collide with a different parameter list.
func Key(name string, args ...any) string {
	if len(args) == 0 {
		return name
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, arg := range args {
		parts = append(parts, serializeArg(arg))
	}
	return strings.Join(parts, KeySeparator)
}

func serializeArg(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case []string:
		quoted := make([]string, len(x))
		for i, s := range x {
			quoted[i] = strconv.Quote(s)
		}
		return fmt.Sprintf("slice[%d]:{%s}", len(x), strings.Join(quoted, ","))
	default:
		return fmt.Sprintf("%v", x)
	}
}
