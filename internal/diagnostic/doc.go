// Package diagnostic collects the findings of static entity inspection.
//
// Findings are grouped by severity:
//   - errors make the type unusable by the converter
//   - warnings flag mappings that compile but are unlikely to be meant
//   - infos explain decisions taken while mapping
package diagnostic
