package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/brainbattle/internal/domain"
)

var waitlistEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrWaitlistDisabled is returned by List when no repository is configured.
var ErrWaitlistDisabled = errors.New("waitlist storage not configured")

// WaitlistUC records interest in a mission. With a nil Repo signups are only
// logged.
type WaitlistUC struct {
	Repo domain.WaitlistRepo
}

func (uc *WaitlistUC) Join(ctx context.Context, email, mission string) error {
	mission = strings.TrimSpace(mission)
	if strings.TrimSpace(email) == "" {
		return domain.NewValidationError("email", "Email is required")
	}
	if !waitlistEmailRe.MatchString(email) {
		return domain.NewValidationError("email", "Please enter a valid email address")
	}
	if mission == "" {
		return domain.NewValidationError("mission", "Mission is required")
	}
	if uc.Repo != nil {
		if err := uc.Repo.Save(ctx, &domain.WaitlistSignup{Email: email, Mission: mission}); err != nil {
			return err
		}
	}
	log.Info().Str("email", email).Str("mission", mission).Msg("waitlist signup")
	return nil
}

func (uc *WaitlistUC) Enabled() bool { return uc.Repo != nil }

func (uc *WaitlistUC) List(ctx context.Context) ([]domain.WaitlistSignup, error) {
	if uc.Repo == nil {
		return nil, ErrWaitlistDisabled
	}
	return uc.Repo.List(ctx)
}
