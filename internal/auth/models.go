package auth

// User is an account allowed to sign in. The opt-in flag controls whether the
// user receives faculty notifications.
type User struct {
	ID                   int64  `bson:"_id"`
	Username             string `bson:"username"`
	PasswordHash         string `bson:"password_hash"`
	Email                string `bson:"email"`
	ReceiveNotifications bool   `bson:"receive_notifications"`
}

type SignupRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Email    string `form:"email"`
}

type Credential struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
