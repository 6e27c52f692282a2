package document

import (
	"github.com/davecgh/go-spew/spew"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	DisableMethods:          true,
}

// Dump renders nodes for debugging and diagnostics output.
func Dump(docs []Document) string {
	return dumper.Sdump(docs)
}
