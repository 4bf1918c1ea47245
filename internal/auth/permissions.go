package auth

import "net/http"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsSafeMethod - методы только для чтения
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// IsStaff - staff-идентичность (может писать и читать сообщения)
func IsStaff(role string) bool {
	return role == RoleAdmin
}

// TrustedHeader - доверенный заголовок-маркер вместо проверенной идентичности.
// Оставлен для совместимости с фронтендом; выключается конфигом.
type TrustedHeader struct {
	Enabled bool
	Name    string
	Value   string
}

func (h TrustedHeader) Matches(r *http.Request) bool {
	if !h.Enabled || h.Name == "" {
		return false
	}
	return r.Header.Get(h.Name) == h.Value
}

// WriteGate - решение "может ли запрос писать": безопасные методы всегда,
// иначе staff или доверенный заголовок
func WriteGate(method, role string, trusted bool) bool {
	if IsSafeMethod(method) {
		return true
	}
	return trusted || IsStaff(role)
}
