package model

import (
	"errors"

	"rigforge/backend/common"

	"github.com/burugo/thing"
)

// User is an account that can log in and, with the admin role, browse the
// submission history. Password is a bcrypt hash and never serialized.
type User struct {
	thing.BaseModel
	Username    string `db:"username,index" json:"username"`
	Password    string `db:"password" json:"-"`
	DisplayName string `db:"display_name" json:"display_name"`
	Role        int    `db:"role" json:"role"`
	Status      int    `db:"status" json:"status"`
	Email       string `db:"email,index" json:"email"`
}

// TableName sets the table name for the User model
func (u *User) TableName() string {
	return "users"
}

var UserDB *thing.Thing[*User]

// UserInit initializes the UserDB
func UserInit() error {
	var err error
	UserDB, err = thing.Use[*User]()
	if err != nil {
		return err
	}
	return nil
}

func GetUserById(id int64) (*User, error) {
	if id == 0 {
		return nil, errors.New("empty user id")
	}
	return UserDB.ByID(id)
}

func IsUsernameTaken(username string) (bool, error) {
	users, err := UserDB.Where("username = ?", username).Fetch(0, 1)
	if err != nil {
		return false, err
	}
	return len(users) > 0, nil
}

func (user *User) Insert() error {
	if user.Password != "" {
		var err error
		user.Password, err = common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
	}
	return UserDB.Save(user)
}

// ValidateAndFill checks the credentials currently set on user and, when they
// match an enabled account, replaces user with the stored record.
func (user *User) ValidateAndFill() error {
	if user.Username == "" || user.Password == "" {
		return errors.New("username or password is empty")
	}
	users, err := UserDB.Where("username = ?", user.Username).Fetch(0, 1)
	if err != nil || len(users) == 0 {
		return errors.New("wrong username or password, or the user is banned")
	}
	found := users[0]
	okay := common.ValidatePasswordAndHash(user.Password, found.Password)
	if !okay || found.Status != common.UserStatusEnabled {
		return errors.New("wrong username or password, or the user is banned")
	}
	*user = *found
	return nil
}
