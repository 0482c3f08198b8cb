package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrNotAuthenticated   ErrCode = "NOT_AUTHENTICATED"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrDomainNotAllowed   ErrCode = "DOMAIN_NOT_ALLOWED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrPhotoTooLarge  ErrCode = "PHOTO_TOO_LARGE"
	ErrInvalidPhoto   ErrCode = "INVALID_PHOTO"

	// ─── Card workflow ─────────────────────────────────────────────────
	ErrRecordNotFound       ErrCode = "RECORD_NOT_FOUND"
	ErrConfirmationRequired ErrCode = "CONFIRMATION_REQUIRED"

	// ─── Roles registry ────────────────────────────────────────────────
	ErrInvalidLogin   ErrCode = "INVALID_LOGIN"
	ErrBootstrapAdmin ErrCode = "BOOTSTRAP_ADMIN"

	// ─── Storage ───────────────────────────────────────────────────────
	ErrStoreUnavailable ErrCode = "STORE_UNAVAILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrNotAuthenticated:
		return "Você precisa estar autenticado para continuar."
	case ErrInvalidCredentials:
		return "E-mail ou senha incorretos."
	case ErrTokenRequired:
		return "Token de autenticação é obrigatório."
	case ErrTokenInvalid:
		return "Token de autenticação inválido."
	case ErrSessionInvalidated:
		return "Sua sessão expirou. Entre novamente."
	case ErrDomainNotAllowed:
		return "Use um e-mail institucional do IFSC (@aluno.ifsc.edu.br ou @ifsc.edu.br)."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Você não tem permissão para acessar este recurso."
	case ErrAdminAccessOnly:
		return "Este recurso é restrito a servidores administradores."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Preencha todos os campos obrigatórios."
	case ErrInvalidID:
		return "Formato de identificador inválido."
	case ErrInvalidPayload:
		return "Corpo da requisição inválido."
	case ErrPhotoTooLarge:
		return "A foto 3x4 deve ter no máximo 300 KB."
	case ErrInvalidPhoto:
		return "Não foi possível ler a foto. Tente novamente."

	// ─── Card workflow ─────────────────────────────────────────────────
	case ErrRecordNotFound:
		return "Pedido de carteirinha não encontrado."
	case ErrConfirmationRequired:
		return "Esta ação precisa ser confirmada antes de ser aplicada."

	// ─── Roles registry ────────────────────────────────────────────────
	case ErrInvalidLogin:
		return "Informe um login institucional válido."
	case ErrBootstrapAdmin:
		return "Este administrador é fixo e não pode ser removido."

	// ─── Storage ───────────────────────────────────────────────────────
	case ErrStoreUnavailable:
		return "Não foi possível salvar os dados agora. Tente novamente."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Muitas tentativas. Aguarde um pouco e tente novamente."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Ocorreu um erro interno no servidor."
	default:
		return "Ocorreu um erro inesperado."
	}
}
