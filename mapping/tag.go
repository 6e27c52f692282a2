package mapping

import (
	"fmt"
	"strings"
)

const (
	// DefaultTag is the struct tag key holding column definitions.
	DefaultTag = "column"
	// EntityTag on the embedded Entity marker names the entity.
	EntityTag = "entity"
)

// ColumnTag is a parsed column tag: `column:"name,id,converter=money"`.
type ColumnTag struct {
	Name      string // empty means the Go field name
	ID        bool
	Converter string
	Skip      bool // the tag is "-"
}

// ParseColumnTag parses the value of a column tag. Unknown options are
// ErrNotMappable.
func ParseColumnTag(raw string) (ColumnTag, error) {
	if raw == "-" {
		return ColumnTag{Skip: true}, nil
	}

	parts := strings.Split(raw, ",")
	tag := ColumnTag{Name: strings.TrimSpace(parts[0])}

	for _, opt := range parts[1:] {
		opt = strings.TrimSpace(opt)

		switch {
		case opt == "":
		case opt == "id":
			tag.ID = true
		case strings.HasPrefix(opt, "converter="):
			tag.Converter = strings.TrimPrefix(opt, "converter=")
			if tag.Converter == "" {
				return ColumnTag{}, fmt.Errorf("%w: empty converter name in %q", ErrNotMappable, raw)
			}
		default:
			return ColumnTag{}, fmt.Errorf("%w: unknown column option %q", ErrNotMappable, opt)
		}
	}

	return tag, nil
}
