package domain

// ClientType distinguishes retail clients from corporate/agency accounts.
type ClientType string

const (
	ClientTypeB2C ClientType = "B2C"
	ClientTypeB2B ClientType = "B2B"
)

// ClientSelection records the client chosen in step 1 of the wizard.
// It is immutable once set; the only way to change it is an explicit clear.
type ClientSelection struct {
	ClientType ClientType
	ClientID   int64 // positive identifier from the client catalog
}
