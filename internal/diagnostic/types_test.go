package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	var d Diagnostics
	assert.NoError(t, d.Err())
	assert.False(t, d.HasErrors())

	d.AddInfo("map_registration", "register the value type", "testmodel.Archive", "Sorted")

	var other Diagnostics
	other.AddError("duplicate_column", `column "name" is used twice`, "shop.Item", "Title")
	other.AddError("unexported_tag", "tagged field is not exported", "shop.Item", "secret")
	other.AddWarning("map_key", "map keys are not strings", "", "")
	d.Merge(other)

	assert.True(t, d.HasErrors())
	assert.Len(t, d.All(), 4)
	assert.Equal(t, SeverityError, d.All()[0].Severity)

	err := d.Err()
	assert.Len(t, multierr.Errors(err), 2)
	assert.EqualError(t, err,
		`[shop.Item] Title: [duplicate_column] column "name" is used twice; `+
			`[shop.Item] secret: [unexported_tag] tagged field is not exported`)

	assert.Equal(t, "[map_key] map keys are not strings", d.Warnings[0].String())
}

func TestSeverityString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
