package dto

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type CriarUsuarioRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Nome     string `json:"nome"     validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=dono vendedor solo"`
	// EmpresaID is required for vendedor accounts created by a dono.
	EmpresaID  *string `json:"empresa_id"  validate:"omitempty,uuid"`
	VendedorID *string `json:"vendedor_id" validate:"omitempty,uuid"`
}

type AtualizarUsuarioRequest struct {
	Nome     string  `json:"nome"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password string  `json:"password" validate:"omitempty,min=6"`
}

type UsuarioResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Nome      string  `json:"nome"`
	Role      string  `json:"role"`
	EmpresaID *string `json:"empresa_id,omitempty"`
	Ativo     bool    `json:"ativo"`
	CreatedAt string  `json:"created_at"`
}
