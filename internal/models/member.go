package models

type Member struct {
	Id    int64
	Name  string
	Email string
}
