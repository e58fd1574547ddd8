package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicdesk/models"
	"clinicdesk/services/booking"
	ai "clinicdesk/services/intelligence"
	"clinicdesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssistantService handles one conversational turn end to end.
type AssistantService interface {
	HandleUtterance(ctx context.Context, sessionID, utterance string) (*models.ChatResponse, error)
	EndSession(ctx context.Context, sessionID string) error
}

// DefaultAssistantService mediates between the session registry, the
// conversational model and the booking service.
type DefaultAssistantService struct {
	Model       ai.ConversationModel
	Sessions    SessionStore
	Booking     booking.BookingService
	Policy      models.PracticePolicy
	TurnTimeout time.Duration
	Now         func() time.Time

	locks *turnLocks
}

func NewDefaultAssistantService(
	model ai.ConversationModel,
	sessions SessionStore,
	bookingSvc booking.BookingService,
	policy models.PracticePolicy,
	turnTimeout time.Duration,
) *DefaultAssistantService {
	return &DefaultAssistantService{
		Model:       model,
		Sessions:    sessions,
		Booking:     bookingSvc,
		Policy:      policy,
		TurnTimeout: turnTimeout,
		Now:         time.Now,
		locks:       newTurnLocks(),
	}
}

// HandleUtterance runs one turn: resolve or create the session, consult the
// model with the full history and a fresh availability snapshot, parse its
// decision, attempt the booking, and only then commit both turns to history.
// Any failure before the commit leaves the history exactly as it was.
func (s *DefaultAssistantService) HandleUtterance(ctx context.Context, sessionID, utterance string) (*models.ChatResponse, error) {
	logger := utils.GetLogger()

	id := sessionID
	if id == "" {
		id = uuid.New().String()
	}

	// Turns on the same session queue behind each other.
	if err := s.locks.acquire(id, s.TurnTimeout); err != nil {
		return nil, err
	}
	defer s.locks.release(id)

	now := s.Now()
	session, err := s.Sessions.Get(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		session = &models.Session{ID: id, CreatedAt: now}
	} else if err != nil {
		logger.Error("session store read failed", zap.String("sessionID", id), zap.Error(err))
		return nil, booking.NewBookingError(booking.CodeUpstreamUnavailable, "session store unavailable")
	}

	booked, err := s.Booking.BookedSlots(ctx)
	if err != nil {
		return nil, err
	}
	system := ai.BuildSystemContext(s.Policy, now, booked)

	modelCtx, cancel := context.WithTimeout(ctx, s.TurnTimeout)
	defer cancel()
	raw, err := s.Model.Converse(modelCtx, system, session.Turns, utterance)
	if err != nil {
		logger.Error("model call failed", zap.String("sessionID", id), zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) || modelCtx.Err() == context.DeadlineExceeded {
			return nil, booking.NewBookingError(booking.CodeUpstreamTimeout, "conversational model timed out")
		}
		return nil, booking.NewBookingError(booking.CodeUpstreamUnavailable, "conversational model unavailable")
	}

	decision, err := ai.ParseDecision(raw)
	if err != nil {
		logger.Warn("unparseable model output", zap.String("sessionID", id), zap.Error(err))
		return nil, err
	}

	result, err := s.Booking.TryBook(ctx, decision.Booking, now)
	if err != nil {
		return nil, err
	}

	reply := decision.Reply
	if result.Outcome == booking.OutcomeRejected {
		reply += rejectionNote(result)
	}

	session.Turns = append(session.Turns,
		models.Turn{Role: models.RoleUser, Text: utterance},
		models.Turn{Role: models.RoleAssistant, Text: reply},
	)
	session.LastActive = now
	if err := s.Sessions.Put(ctx, session); err != nil {
		// The booking, if any, is already committed; losing history only
		// costs conversational context.
		logger.Warn("session store write failed", zap.String("sessionID", id), zap.Error(err))
	}

	resp := &models.ChatResponse{
		SessionID: id,
		Reply:     reply,
		Outcome:   result.Outcome,
		Reason:    result.Reason,
		NextSlot:  result.NextSlot,
	}
	if result.Outcome == booking.OutcomeBooked {
		resp.Booking = decision.Booking
	}
	return resp, nil
}

// EndSession drops the conversation. It queues behind any in-flight turn on
// the same session so the two never interleave.
func (s *DefaultAssistantService) EndSession(ctx context.Context, sessionID string) error {
	if err := s.locks.acquire(sessionID, s.TurnTimeout); err != nil {
		return err
	}
	defer s.locks.release(sessionID)

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return booking.NewBookingError(booking.CodeUpstreamUnavailable, "session store unavailable")
	}
	return nil
}

func rejectionNote(result *booking.BookingResult) string {
	var why string
	switch result.Reason {
	case booking.CodeInPast:
		why = "that time has already passed"
	case booking.CodeOutOfHours:
		why = "the doctor is not available at that time"
	case booking.CodeSlotFull:
		why = "that slot is fully booked"
	default:
		why = "that slot could not be booked"
	}
	if result.NextSlot != nil {
		return fmt.Sprintf(" I could not book it because %s. The next available slot is %s at %s.",
			why, result.NextSlot.Date, result.NextSlot.Time)
	}
	return fmt.Sprintf(" I could not book it because %s.", why)
}
