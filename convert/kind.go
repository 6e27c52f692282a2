package convert

//go:generate go tool stringer -type=ConverterEnum -trimprefix=Converter -output=kind_string.go

// ConverterEnum names a field converter variant.
type ConverterEnum int

const (
	ConverterDefault ConverterEnum = iota
	ConverterEmbedded
	ConverterSubEntity
	ConverterCollectionEmbeddable
	ConverterMapEmbeddable

	// ConverterTotal is a constant that represents the total number of converters defined
	ConverterTotal = int(iota)
)
