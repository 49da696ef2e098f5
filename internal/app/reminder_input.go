package app

type UpsertReminderInput struct {
	UserID    string
	TimeOfDay string
	Timezone  string
	Frequency string
	// Active defaults to true when nil.
	Active *bool
}

type GetReminderInput struct {
	UserID string
}

type UnsubscribeInput struct {
	Token string
}
