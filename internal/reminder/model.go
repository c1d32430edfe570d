package reminder

// ReminderEmailModel adalah data yang dirender ke badan email pengingat
type ReminderEmailModel struct {
	CompanyName      string
	AssigneeName     string
	TaskTitle        string
	TimeZoneID       string
	DueDateLocal     string
	MissingDocuments []string
	TaskURL          string
}
