package cryptox

// Result - итог расшифровки: Decrypted(value) или DecryptionFailed(reason)
type Result struct {
	value  string
	reason error
}

func Decrypted(value string) Result {
	return Result{value: value}
}

func DecryptionFailed(reason error) Result {
	return Result{reason: reason}
}

// Value возвращает расшифрованное значение; ok=false при DecryptionFailed
func (r Result) Value() (string, bool) {
	if r.reason != nil {
		return "", false
	}
	return r.value, true
}

// Err - причина неудачи (nil для Decrypted)
func (r Result) Err() error {
	return r.reason
}
