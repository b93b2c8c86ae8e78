package utils

import (
	"log"
	"strings"
)

// LogEvent writes one audit line per domain-level action. The message is a
// short summary; request payloads never go through here.
func LogEvent(requestID, module, action, message string) {
	log.Printf("%s.%s request_id=%s %s",
		strings.ToLower(strings.TrimSpace(module)), action,
		strings.TrimSpace(requestID), message)
}
