package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/farellandr/sponzo/internal/models"
)

// TicketCode is the content of a ticket's QR code.
type TicketCode struct {
	TicketID  string
	EventID   string
	StudentID string
	Signature string
}

type TicketSigner struct {
	secret []byte
}

func NewTicketSigner(secret string) *TicketSigner {
	return &TicketSigner{secret: []byte(secret)}
}

func (s *TicketSigner) signature(ticketID, eventID, studentID string) string {
	data := fmt.Sprintf("%s:%s:%s", ticketID, eventID, studentID)
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// Encode returns "ticket:<id>;event:<id>;student:<id>;signature:<hex>".
func (s *TicketSigner) Encode(ticketID, eventID, studentID string) string {
	return fmt.Sprintf("ticket:%s;event:%s;student:%s;signature:%s",
		ticketID, eventID, studentID, s.signature(ticketID, eventID, studentID))
}

// Decode parses and verifies a payload produced by Encode.
func (s *TicketSigner) Decode(payload string) (*TicketCode, error) {
	parts := strings.Split(strings.TrimSpace(payload), ";")
	if len(parts) != 4 {
		return nil, models.ErrInvalidTicketCode
	}

	var values [4]string
	for i, prefix := range []string{"ticket:", "event:", "student:", "signature:"} {
		if !strings.HasPrefix(parts[i], prefix) {
			return nil, models.ErrInvalidTicketCode
		}
		values[i] = strings.TrimPrefix(parts[i], prefix)
	}

	code := &TicketCode{TicketID: values[0], EventID: values[1], StudentID: values[2], Signature: values[3]}
	expected := s.signature(code.TicketID, code.EventID, code.StudentID)
	if !hmac.Equal([]byte(expected), []byte(code.Signature)) {
		return nil, models.ErrInvalidTicketCode
	}
	return code, nil
}
