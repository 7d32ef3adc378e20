package dto

type AuthRequestDTO struct {
	InitData string `json:"initData" validate:"required"`
}

type AuthResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
