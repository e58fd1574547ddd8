// File: services/intelligence/interface.go
package ai

import (
	"context"

	"clinicdesk/models"
)

// ConversationModel is the language-understanding collaborator. It receives
// the full ordered history plus the new utterance and returns the raw model
// text, which the caller must parse defensively.
type ConversationModel interface {
	Converse(ctx context.Context, system string, history []models.Turn, utterance string) (string, error)
}
