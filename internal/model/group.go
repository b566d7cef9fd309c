package model

const (
	CollectionGroups   = "groups"
	CollectionStudents = "students"
)

type Group struct {
	ID     *int64 `db:"id"     json:"id,omitempty"`
	Name   string `db:"name"   json:"name"`
	Status bool   `db:"status" json:"status"`
}

// GroupColumns daftar kolom yang boleh dipakai sebagai filter
var GroupColumns = Columns{
	"id":     KindInt,
	"name":   KindText,
	"status": KindBool,
}
