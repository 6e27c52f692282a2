// Package keyvalue stores mapped entities in key-value databases.
//
// A Bucket is the raw byte store, backed by Redis or Badger. A Template sits
// on top of a Bucket and a convert.EntityConverter: entities are keyed by
// their id field and stored as BSON documents.
package keyvalue
