package profile

// LookupInput for GET /profiles/{username}. Username is normalized before
// validation, so "@natgeo" is accepted.
type LookupInput struct {
	Username string `json:"username" validate:"required,handle"`
}
