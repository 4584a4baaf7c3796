package models

type User struct {
	ID           int64
	Username     string
	Phone        string
	PasswordHash string
	Name         string
	City         string
}
