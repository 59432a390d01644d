package services

import (
	"delivery-time-service/internal/domain"
	"errors"
	"math"

	"go.uber.org/zap"
	"gopkg.in/go-playground/validator.v9"
)

// InvalidSubmissionMessage is the only validation feedback users get.
const InvalidSubmissionMessage = "Please ensure all fields are filled in correctly."

var ErrInvalidSubmission = errors.New("invalid submission")

// SubmissionValidator applies range and presence rules to a delivery form.
// Violations collapse into ErrInvalidSubmission; details are logged at debug.
type SubmissionValidator struct {
	validate *validator.Validate
	log      *zap.Logger
}

func NewSubmissionValidator(log *zap.Logger) *SubmissionValidator {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionValidator{validate: validator.New(), log: log}
}

func (v *SubmissionValidator) Validate(s domain.Submission) error {
	if err := v.validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				v.log.Debug("submission field rejected",
					zap.String("field", fe.Field()),
					zap.String("rule", fe.Tag()),
					zap.String("param", fe.Param()),
				)
			}
		} else {
			v.log.Debug("submission rejected", zap.Error(err))
		}
		return ErrInvalidSubmission
	}

	perKm := s.PrepareTimePerKm()
	if perKm <= 0 || math.IsInf(perKm, 0) || math.IsNaN(perKm) {
		v.log.Debug("submission field rejected",
			zap.String("field", domain.FeaturePrepareTimePerKm),
			zap.Float64("value", perKm),
		)
		return ErrInvalidSubmission
	}

	return nil
}

// ResolveDistance fills DistanceKm from pickup/dropoff coordinates when no
// explicit distance was given. Invalid coordinates leave it unset.
func ResolveDistance(s domain.Submission) domain.Submission {
	if s.DistanceKm != nil || s.Pickup == nil || s.Dropoff == nil {
		return s
	}
	if !s.Pickup.Valid() || !s.Dropoff.Valid() {
		return s
	}

	d := domain.DistanceKm(*s.Pickup, *s.Dropoff)
	s.DistanceKm = &d
	return s
}
