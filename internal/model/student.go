package model

// Student references its group by the group's numeric id. Age is free text.
type Student struct {
	ID       *int64 `db:"id"       json:"id,omitempty"`
	Fullname string `db:"fullname" json:"fullname"`
	Age      string `db:"age"      json:"age"`
	GroupID  *int64 `db:"group_id" json:"group_id"`
	Status   bool   `db:"status"   json:"status"`
}

var StudentColumns = Columns{
	"id":       KindInt,
	"fullname": KindText,
	"age":      KindText,
	"group_id": KindInt,
	"status":   KindBool,
}

// Int64 returns a pointer to v, for building records in place.
func Int64(v int64) *int64 {
	return &v
}
