package notify

// Contact is a crisis-support line shown alongside an escalated result.
type Contact struct {
	Name        string
	Phone       string
	Available   string
	Description string
}

// CrisisContacts is the static list of support lines.
var CrisisContacts = []Contact{
	{
		Name:        "Emergency Services",
		Phone:       "108",
		Available:   "24/7",
		Description: "If you or someone is in immediate danger",
	},
	{
		Name:        "National Suicide Prevention Lifeline",
		Phone:       "9152987821",
		Available:   "24/7",
		Description: "National crisis support and suicide prevention",
	},
	{
		Name:        "NIMHANS Helpline",
		Phone:       "+91-80-46110007",
		Available:   "24/7",
		Description: "Professional mental health crisis support",
	},
}
