package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line per significant action. Keep
// the message short and free of passenger details or tokens.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s",
		strings.ToUpper(strings.TrimSpace(module)), action, req, message)
}
