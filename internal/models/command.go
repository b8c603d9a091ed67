package models

// Commands accepted in the envelope's "command" field.
const (
	CommandCreate = "create"
	CommandUpdate = "update"
	CommandDelete = "delete"
)

// ProductFields carries the mutable product fields of a command envelope.
// Every field is a pointer so that "absent" and "zero" stay distinguishable:
// an absent field means "leave unchanged" on update and "missing" on create
// and delete. Quantity is decoded as a float so that non-integral values
// reach the integer check instead of failing inside the JSON decoder.
type ProductFields struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *float64 `json:"quantity"`
}

// ProductCommand is the envelope posted to /product.
type ProductCommand struct {
	Command string `json:"command" validate:"required"`
	ID      *int64 `json:"id" validate:"required,gt=0"`
	ProductFields
}

// UserFields carries the mutable user fields of a command envelope.
// Password is the submitted plaintext; it is hashed before it ever reaches
// a repository and is never echoed back.
type UserFields struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserCommand is the envelope posted to /user.
type UserCommand struct {
	Command string `json:"command" validate:"required"`
	ID      *int64 `json:"id" validate:"required,gt=0"`
	UserFields
}
