package oauth

// RedactedToken wraps an access or refresh token so that formatting it with
// fmt, slog or encoding/json prints "[REDACTED]" instead of the secret.
//
//	token := oauth.NewRedactedToken("ya29.a0...")
//	fmt.Println(token)   // [REDACTED]
//	token.IsEmpty()      // false
type RedactedToken struct {
	value string
}

// NewRedactedToken creates a new RedactedToken wrapping the given value.
func NewRedactedToken(value string) RedactedToken {
	return RedactedToken{value: value}
}

// String implements fmt.Stringer. Empty tokens render as "[EMPTY]" so logs
// still show whether a token was present.
func (t RedactedToken) String() string {
	if t.value == "" {
		return "[EMPTY]"
	}
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer for %#v formatting.
func (t RedactedToken) GoString() string {
	return "oauth.RedactedToken{" + t.String() + "}"
}

// IsEmpty returns true if the token value is empty.
func (t RedactedToken) IsEmpty() bool {
	return t.value == ""
}

// MarshalText implements encoding.TextMarshaler.
func (t RedactedToken) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
