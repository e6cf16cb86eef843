package domain

// Identity is the authenticated caller established per-request from the
// credential cookie. It is never persisted by this core.
//
// Email and Name are display attributes carried for convenience; authorization
// decisions use MemberID only.
type Identity struct {
	MemberID MemberID
	Email    *string
	Name     *string
}
