package models

import "time"

// Record is a loosely typed document as returned by a record store.
type Record map[string]interface{}

// Timestamp is the epoch-seconds form a document database uses for date fields.
type Timestamp struct {
	Seconds     int64 `bson:"seconds" json:"seconds" firestore:"seconds"`
	Nanoseconds int32 `bson:"nanoseconds,omitempty" json:"nanoseconds,omitempty" firestore:"nanoseconds,omitempty"`
}

// NewTimestamp converts t to a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Seconds: t.Unix(), Nanoseconds: int32(t.Nanosecond())}
}

// ID returns the record's identifier, if any.
func (r Record) ID() string {
	for _, key := range []string{"id", "_id"} {
		if v, ok := r[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
