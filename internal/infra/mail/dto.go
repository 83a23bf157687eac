package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type BookingAlertData struct {
	ClientName    string
	ExecutiveName string
	SiteName      string
	AmountLakhs   string
}

type FollowUpAlertData struct {
	ClientName string
	Since      string
}
