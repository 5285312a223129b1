package respond

import "regexp"

var (
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)
	dsnPasswordPattern  = regexp.MustCompile(`://([^:/]+):([^@]+)@`)
	kvPasswordPattern   = regexp.MustCompile(`(?i)password=\S+`)
	bearerPattern       = regexp.MustCompile(`Bearer [A-Za-z0-9\-_.]+`)
)

// SanitizeError redacts API keys, connection-string passwords and bearer
// tokens from err's message.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "password=****")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	return msg
}
