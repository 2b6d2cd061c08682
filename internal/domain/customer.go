package domain

// Customer is one credentialed account. PasswordHash is a bcrypt hash and
// never leaves the repository/auth layers.
type Customer struct {
	CID          int64  `json:"cid"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}
