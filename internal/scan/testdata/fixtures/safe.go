package main

import (
	"fmt"

	"fixtures/optional"
)

type store struct{}

type record struct {
	Name string
}

func (db *store) find(id int) (*record, error) {
	if id < 0 {
		return nil, fmt.Errorf("record %d not found", id)
	}
	return &record{Name: "test"}, nil
}

// Returns after the error check.
func checkedLookup(db *store) {
	rec, err := db.find(42)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(rec.Name)
}

func maybeName(rec *record) string {
	if rec == nil {
		return "null"
	}
	return rec.Name
}

func init() {
	checkedLookup(&store{})
	fmt.Println(maybeName(nil))
	fmt.Println(optional.Some("This is not null").MustGet("read"))
}
