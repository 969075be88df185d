package domain

// ID is used across domain entities.
type ID int64

// Status represents a lightweight state value.
type Status string

// RequestContext carries authenticated user info when available. OwnerID is
// zero for anonymous requests; the booking pipeline runs end-to-end without
// it and only persistence requires one.
type RequestContext struct {
	OwnerID ID     `json:"ownerId"`
	Email   string `json:"email"`
}

func (rc RequestContext) Authenticated() bool {
	return rc.OwnerID > 0
}
