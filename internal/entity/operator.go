package entity

type Operator struct {
	ID       string
	Username string
	Role     string
}
