package common

// UnknownStr names values outside of an enumeration.
const UnknownStr = "unknown"
