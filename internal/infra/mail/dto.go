package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string

	// From address on everything we send.
	From string
	// Where transition notifications go (sales inbox).
	NotifyTo string
}

type statusChangedData struct {
	ProspectName string
	OldStatus    string
	NewStatus    string
	StatusDate   string
	Notes        string
	UserName     string
}

type tempPasswordData struct {
	Name     string
	Password string
}
