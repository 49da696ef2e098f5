package handler

type UpsertReminderRequest struct {
	UserID    string `json:"user_id" binding:"required,uuid"`
	TimeOfDay string `json:"time_of_day" binding:"required,time_of_day"`
	Timezone  string `json:"timezone" binding:"omitempty,timezone"`
	Frequency string `json:"frequency" binding:"omitempty,oneof=daily"`
	Active    *bool  `json:"active"`
}

type UnsubscribeRequest struct {
	Token string `form:"token" json:"token"`
}
