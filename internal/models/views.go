package models

// RatingView is a rating joined with the accountant it targets and the user who wrote it.
type RatingView struct {
	Rating
	AccountantName      string `json:"accountant_name"`
	AccountantSpecialty string `json:"accountant_specialty"`
	AccountantPhoto     string `json:"accountant_photo"`
	RaterName           string `json:"rater_name"`
	RaterPhoto          string `json:"rater_photo"`
}

// ProposalView is a proposal joined with both parties.
type ProposalView struct {
	Proposal
	AccountantName  string `json:"accountant_name"`
	AccountantPhoto string `json:"accountant_photo"`
	ClientName      string `json:"client_name"`
	ClientEmail     string `json:"client_email"`
	ClientPhoto     string `json:"client_photo"`
}
