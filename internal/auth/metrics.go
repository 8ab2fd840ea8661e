package auth

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Guard rejection reasons, used as the reason label.
const (
	ReasonMissing      = "missing"
	ReasonBadSignature = "bad_signature"
	ReasonExpired      = "expired"
	ReasonForbidden    = "forbidden"
)

var (
	guardRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_guard_rejections_total",
		Help: "Requests rejected by the admin guard, by reason.",
	}, []string{"reason"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_attempts_total",
		Help: "Credential verifications, by result.",
	}, []string{"result"})
)

// ObserveRejection counts one guard rejection.
func ObserveRejection(reason string) {
	guardRejections.WithLabelValues(reason).Inc()
}

// RejectionReason maps a Validate error to its reason label.
func RejectionReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrExpired):
		return ReasonExpired
	default:
		return ReasonBadSignature
	}
}
