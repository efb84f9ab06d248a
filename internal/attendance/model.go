package attendance

import "time"

// Record is one child's presence for one calendar day. Exactly one
// record may exist per (child, day).
type Record struct {
	ID       int       `json:"id"`
	ChildID  int       `json:"child_id"`
	Day      time.Time `json:"day"`
	Attended bool      `json:"attended"`
}
