package store

// KV is a raw key/value pair. It backs the question repository state and the
// schema version.
type KV struct {
	Key       string
	Value     string
	UpdatedTs int64
}

// FindKV specifies the key to look up.
type FindKV struct {
	Key string
}

// UpsertKV specifies the data for upserting a key/value pair.
type UpsertKV struct {
	Key   string
	Value string
}
