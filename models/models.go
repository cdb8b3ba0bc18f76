package models

// All liệt kê model cần AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Survey{},
		&Item{},
		&OptionSet{},
		&Service{},
		&Response{},
		&ResponseAnswer{},
		&Feedback{},
		&Draft{},
		&ExportJob{},
	}
}
